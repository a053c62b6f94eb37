// File: models/payment.go
package models

// BillingPeriod is how often a plan renews.
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingNone    BillingPeriod = ""
)

// Plan is one entry of the subscription catalog. Amount is in minor units.
type Plan struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Period      BillingPeriod `json:"period,omitempty"`
	Purchasable bool          `json:"purchasable"`
	Features    []string      `json:"features"`
}

// CheckoutSession carries what the client needs to open the gateway's payment UI.
type CheckoutSession struct {
	Gateway      string            `json:"gateway"`
	PlanID       string            `json:"planId"`
	TxRef        string            `json:"txRef"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	PublicKey    string            `json:"publicKey,omitempty"`
	ClientSecret string            `json:"clientSecret,omitempty"`
	CustomerMail string            `json:"customerEmail,omitempty"`
	Meta         map[string]string `json:"meta"` // attach unchanged to the payment; verification requires it
}

// PaymentCallback is the client-reported outcome of a checkout.
type PaymentCallback struct {
	Status        string `json:"status" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
	TxRef         string `json:"txRef"`
	PlanID        string `json:"planId" binding:"required"`
}

// VerifiedPayment is the gateway's own view of a transaction.
type VerifiedPayment struct {
	TransactionID string
	TxRef         string
	Status        string
	Amount        int64
	Currency      string
	Metadata      map[string]string
}

// The trial plan every new profile starts on.
const (
	TrialPlanID   = "trial"
	TrialPlanName = "Free Trial"
)
