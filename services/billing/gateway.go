package billing

import (
	"context"

	"lexaid/models"
)

const (
	GatewayFlutterwave = "flutterwave"
	GatewayStripe      = "stripe"
)

// StatusSuccessful is the normalised status of a settled transaction.
const StatusSuccessful = "successful"

// Gateway is a payment provider. Checkout prepares a client-side payment and
// Verify asks the provider for the authoritative state of a transaction.
type Gateway interface {
	Name() string
	Checkout(ctx context.Context, plan models.Plan, customer Customer, txRef string) (*models.CheckoutSession, error)
	Verify(ctx context.Context, transactionID string) (*models.VerifiedPayment, error)
}

// Customer identifies the paying user.
type Customer struct {
	UID   string
	Email string
}

func paymentMetadata(plan models.Plan, customer Customer, txRef string) map[string]string {
	return map[string]string{
		"uid":    customer.UID,
		"planId": plan.ID,
		"txRef":  txRef,
	}
}
