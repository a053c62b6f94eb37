package billing

import (
	"context"
	"fmt"
	"strings"

	"lexaid/models"
	"lexaid/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway uses PaymentIntents. It relies on stripe.Key being set at
// startup.
type StripeGateway struct{}

func (StripeGateway) Name() string { return GatewayStripe }

func configured() error {
	if stripe.Key == "" {
		return fmt.Errorf("stripe key: %w", utils.ErrServiceUnavailable)
	}
	return nil
}

func (StripeGateway) Checkout(_ context.Context, plan models.Plan, customer Customer, txRef string) (*models.CheckoutSession, error) {
	if err := configured(); err != nil {
		return nil, err
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(plan.Amount),
		Currency: stripe.String(strings.ToLower(plan.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Description: stripe.String(plan.Name),
	}
	if customer.Email != "" {
		params.ReceiptEmail = stripe.String(customer.Email)
	}
	for k, v := range paymentMetadata(plan, customer, txRef) {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, &utils.RemoteError{Service: GatewayStripe, Err: err}
	}
	return &models.CheckoutSession{
		Gateway:      GatewayStripe,
		PlanID:       plan.ID,
		TxRef:        txRef,
		Amount:       plan.Amount,
		Currency:     plan.Currency,
		ClientSecret: pi.ClientSecret,
		CustomerMail: customer.Email,
	}, nil
}

func (StripeGateway) Verify(_ context.Context, transactionID string) (*models.VerifiedPayment, error) {
	if err := configured(); err != nil {
		return nil, err
	}
	pi, err := paymentintent.Get(transactionID, nil)
	if err != nil {
		if serr, ok := err.(*stripe.Error); ok && serr.HTTPStatusCode == 404 {
			return nil, fmt.Errorf("payment intent %s: %w", transactionID, utils.ErrPaymentRequired)
		}
		return nil, &utils.RemoteError{Service: GatewayStripe, Err: err}
	}
	return verifiedIntent(pi), nil
}

func verifiedIntent(pi *stripe.PaymentIntent) *models.VerifiedPayment {
	status := string(pi.Status)
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		status = StatusSuccessful
	}
	return &models.VerifiedPayment{
		TransactionID: pi.ID,
		TxRef:         pi.Metadata["txRef"],
		Status:        status,
		Amount:        pi.Amount,
		Currency:      string(pi.Currency),
		Metadata:      pi.Metadata,
	}
}
