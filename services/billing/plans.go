// Package billing sells LexAid plans through a payment gateway and records
// the resulting subscription on the user's profile.
package billing

import (
	"strings"
	"time"

	"lexaid/models"
)

const (
	PlanPlus       = "plus"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

// Plans returns the catalog priced in currency.
func Plans(currency string) []models.Plan {
	currency = strings.ToUpper(currency)
	return []models.Plan{
		{
			ID:          models.TrialPlanID,
			Name:        models.TrialPlanName,
			Description: "Free for the first month",
			Currency:    currency,
			Features: []string{
				"Access to core document types",
				"Standard AI drafting assistance",
				"Community support",
			},
		},
		{
			ID:          PlanPlus,
			Name:        "LexAid Plus",
			Description: "For individual practitioners",
			Amount:      1900,
			Currency:    currency,
			Period:      models.BillingMonthly,
			Purchasable: true,
			Features: []string{
				"Access to all document types",
				"Unlimited document drafts",
				"Clause bank and case manager",
				"Email support",
			},
		},
		{
			ID:          PlanPremium,
			Name:        "LexAid Premium",
			Description: "For busy chambers",
			Amount:      4900,
			Currency:    currency,
			Period:      models.BillingMonthly,
			Purchasable: true,
			Features: []string{
				"All Plus plan features",
				"Citation suggestions and dictation",
				"Hearing reminders",
				"Priority support",
			},
		},
		{
			ID:          PlanEnterprise,
			Name:        "LexAid Enterprise",
			Description: "Contact sales",
			Currency:    currency,
			Features: []string{
				"All Premium plan features",
				"Team collaboration tools",
				"Dedicated account manager",
			},
		},
	}
}

// LookupPlan finds a plan by id.
func LookupPlan(id, currency string) (models.Plan, bool) {
	for _, p := range Plans(currency) {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}

// NewSubscription is the subscription record for a paid plan. Monthly plans
// end one month after start; other plans have no end date.
func NewSubscription(plan models.Plan, transactionID string, now time.Time) models.Subscription {
	sub := models.Subscription{
		PlanName:  plan.Name,
		PlanID:    plan.ID,
		ID:        transactionID,
		Status:    models.SubscriptionActive,
		StartDate: now,
	}
	if plan.Period == models.BillingMonthly {
		end := now.AddDate(0, 1, 0)
		sub.EndDate = &end
	}
	return sub
}
