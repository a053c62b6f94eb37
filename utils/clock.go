package utils

import "time"

// Now returns the current UTC time truncated to the millisecond, which is
// the precision MongoDB stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NextModified returns a lastModified value strictly after prev. Two updates
// inside the same millisecond would otherwise store equal timestamps.
func NextModified(prev time.Time) time.Time {
	now := Now()
	if !now.After(prev) {
		return prev.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return now
}

// DateStamp formats t as a UTC YYYY-MM-DD date.
func DateStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
