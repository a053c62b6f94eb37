package handlers

import (
	"fmt"
	"io"
	"net/http"

	"lexaid/models"
	"lexaid/services/billing"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	Billing billing.BillingService
}

// maxWebhookBytes bounds Stripe event bodies.
const maxWebhookBytes = 64 << 10

func (h *BillingHandler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, h.Billing.Plans())
}

func (h *BillingHandler) Checkout(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req struct {
		PlanID string `json:"planId" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.Billing.Checkout(c.Request.Context(), s, req.PlanID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *BillingHandler) Callback(c *gin.Context) {
	s, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var cb models.PaymentCallback
	if !bindJSON(c, &cb) {
		return
	}
	p, err := h.Billing.HandleCallback(c.Request.Context(), s, cb)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// StripeWebhook handles POST /api/billing/webhook/stripe. It is not behind
// the auth middleware; the Stripe-Signature header authenticates it.
func (h *BillingHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		utils.RespondError(c, fmt.Errorf("read webhook body: %w", err))
		return
	}
	if err := h.Billing.HandleStripeWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
