package utils

import (
	"fmt"
	"math"
	"strings"
)

// MajorToMinor converts a gateway amount in major units (e.g. 19.00) to
// minor units (1900), rounding to the nearest unit.
func MajorToMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// MinorToMajor converts minor units back to a major-unit amount.
func MinorToMajor(amount int64) float64 {
	return math.Round(float64(amount)) / 100
}

// FormatAmount renders a minor-unit amount for display, e.g. "USD 19.00".
func FormatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%s %.2f", strings.ToUpper(currency), MinorToMajor(amount))
}

// SameCurrency compares ISO currency codes case-insensitively.
func SameCurrency(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
