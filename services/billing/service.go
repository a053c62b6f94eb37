package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexaid/models"
	"lexaid/services/user"
	"lexaid/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// BillingService runs the subscription purchase flow.
type BillingService interface {
	Plans() []models.Plan
	Checkout(ctx context.Context, session utils.Session, planID string) (*models.CheckoutSession, error)
	HandleCallback(ctx context.Context, session utils.Session, cb models.PaymentCallback) (*models.UserProfile, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
}

type DefaultBillingService struct {
	Gateway       Gateway
	Profiles      user.ProfileService
	Currency      string
	WebhookSecret string
	Now           func() time.Time
}

func (s *DefaultBillingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.Now()
}

func (s *DefaultBillingService) Plans() []models.Plan {
	return Plans(s.Currency)
}

func (s *DefaultBillingService) purchasable(planID string) (models.Plan, error) {
	plan, ok := LookupPlan(planID, s.Currency)
	if !ok {
		return plan, fmt.Errorf("plan %q: %w", planID, utils.ErrNotFound)
	}
	if !plan.Purchasable {
		return plan, utils.NewValidationError("planId", fmt.Sprintf("%s cannot be purchased online", plan.Name))
	}
	return plan, nil
}

func (s *DefaultBillingService) Checkout(ctx context.Context, session utils.Session, planID string) (*models.CheckoutSession, error) {
	plan, err := s.purchasable(planID)
	if err != nil {
		return nil, err
	}
	if s.Gateway == nil {
		return nil, fmt.Errorf("payment gateway: %w", utils.ErrServiceUnavailable)
	}
	txRef := txRefPrefix(plan.ID) + uuid.NewString()
	customer := Customer{UID: session.UserID, Email: session.Email}
	out, err := s.Gateway.Checkout(ctx, plan, customer, txRef)
	if err != nil {
		return nil, err
	}
	out.Meta = paymentMetadata(plan, customer, txRef)
	utils.GetLogger().Info("Checkout started",
		zap.String("uid", session.UserID), zap.String("plan", plan.ID), zap.String("txRef", txRef), zap.String("gateway", s.Gateway.Name()))
	return out, nil
}

func txRefPrefix(planID string) string {
	return "lexaid-" + planID + "-"
}

func reportedSuccess(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "successful", "completed", "succeeded":
		return true
	}
	return false
}

// checkPayment compares the gateway's record with the plan being bought.
func checkPayment(p *models.VerifiedPayment, plan models.Plan) error {
	if p.Status != StatusSuccessful {
		return fmt.Errorf("transaction %s is %q: %w", p.TransactionID, p.Status, utils.ErrPaymentRequired)
	}
	if !utils.SameCurrency(p.Currency, plan.Currency) {
		return fmt.Errorf("transaction %s paid in %s, expected %s: %w", p.TransactionID, p.Currency, plan.Currency, utils.ErrPaymentRequired)
	}
	if p.Amount < plan.Amount {
		return fmt.Errorf("transaction %s paid %s, expected %s: %w", p.TransactionID,
			utils.FormatAmount(p.Amount, p.Currency), utils.FormatAmount(plan.Amount, plan.Currency), utils.ErrPaymentRequired)
	}
	return nil
}

// checkOwnership ties a verified payment to a checkout issued for this plan
// and user.
func checkOwnership(p *models.VerifiedPayment, plan models.Plan, uid, txRef string) error {
	if !strings.HasPrefix(p.TxRef, txRefPrefix(plan.ID)) {
		return fmt.Errorf("transaction %s was not issued for plan %s: %w", p.TransactionID, plan.ID, utils.ErrPaymentRequired)
	}
	if txRef != p.TxRef {
		return fmt.Errorf("transaction %s does not belong to checkout %q: %w", p.TransactionID, txRef, utils.ErrPaymentRequired)
	}
	if p.Metadata["uid"] != uid {
		return fmt.Errorf("transaction %s belongs to another user: %w", p.TransactionID, utils.ErrPaymentRequired)
	}
	if planID := p.Metadata["planId"]; planID != "" && planID != plan.ID {
		return fmt.Errorf("transaction %s paid for plan %s: %w", p.TransactionID, planID, utils.ErrPaymentRequired)
	}
	return nil
}

// HandleCallback applies a client-reported payment. Nothing changes unless
// the gateway confirms the transaction was made through this user's checkout
// for this plan. Each transaction is applied once.
func (s *DefaultBillingService) HandleCallback(ctx context.Context, session utils.Session, cb models.PaymentCallback) (*models.UserProfile, error) {
	logger := utils.GetLogger()
	if !reportedSuccess(cb.Status) {
		logger.Info("Payment not completed", zap.String("uid", session.UserID), zap.String("status", cb.Status), zap.String("txRef", cb.TxRef))
		return nil, fmt.Errorf("payment status %q: %w", cb.Status, utils.ErrPaymentRequired)
	}
	plan, err := s.purchasable(cb.PlanID)
	if err != nil {
		return nil, err
	}
	if s.Gateway == nil || s.Profiles == nil {
		return nil, fmt.Errorf("billing: %w", utils.ErrServiceUnavailable)
	}

	payment, err := s.Gateway.Verify(ctx, cb.TransactionID)
	if err != nil {
		logger.Warn("Payment verification failed", zap.String("uid", session.UserID), zap.String("transactionId", cb.TransactionID), zap.Error(err))
		return nil, err
	}
	if err := checkPayment(payment, plan); err != nil {
		logger.Warn("Payment rejected", zap.String("uid", session.UserID), zap.Error(err))
		return nil, err
	}
	if err := checkOwnership(payment, plan, session.UserID, cb.TxRef); err != nil {
		logger.Warn("Payment rejected", zap.String("uid", session.UserID), zap.Error(err))
		return nil, err
	}

	p, err := s.Profiles.UpdateSubscription(ctx, session.UserID, NewSubscription(plan, payment.TransactionID, s.now()))
	if errors.Is(err, utils.ErrConflict) {
		logger.Warn("Payment replayed", zap.String("uid", session.UserID), zap.String("transactionId", payment.TransactionID))
	}
	return p, err
}

// HandleStripeWebhook applies payment_intent.succeeded events. Other event
// types are acknowledged and ignored.
func (s *DefaultBillingService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.WebhookSecret == "" || s.Profiles == nil {
		return fmt.Errorf("stripe webhook: %w", utils.ErrServiceUnavailable)
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.WebhookSecret,
		webhook.ConstructEventOptions{Tolerance: webhook.DefaultTolerance, IgnoreAPIVersionMismatch: true})
	if err != nil {
		return utils.NewValidationError("signature", err.Error())
	}
	if event.Type != "payment_intent.succeeded" {
		return nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return utils.NewValidationError("data", err.Error())
	}
	payment := verifiedIntent(&pi)
	uid, planID := payment.Metadata["uid"], payment.Metadata["planId"]
	if uid == "" || planID == "" {
		utils.GetLogger().Warn("Payment intent without LexAid metadata", zap.String("intent", pi.ID))
		return nil
	}
	plan, err := s.purchasable(planID)
	if err != nil {
		return err
	}
	if err := checkPayment(payment, plan); err != nil {
		return err
	}
	if err := checkOwnership(payment, plan, uid, payment.TxRef); err != nil {
		return err
	}
	_, err = s.Profiles.UpdateSubscription(ctx, uid, NewSubscription(plan, payment.TransactionID, s.now()))
	if errors.Is(err, utils.ErrConflict) {
		// Already applied through the client callback or an earlier delivery.
		return nil
	}
	return err
}
