package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lexaid/models"
	"lexaid/utils"
)

// FlutterwaveGateway verifies transactions with the Flutterwave v3 API.
// Checkout needs no server call; the client SDK takes the public key and
// tx_ref directly.
type FlutterwaveGateway struct {
	BaseURL    string
	PublicKey  string
	SecretKey  string
	HTTPClient *http.Client
}

func NewFlutterwaveGateway(baseURL, publicKey, secretKey string) *FlutterwaveGateway {
	return &FlutterwaveGateway{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		PublicKey:  publicKey,
		SecretKey:  secretKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *FlutterwaveGateway) Name() string { return GatewayFlutterwave }

func (g *FlutterwaveGateway) Checkout(_ context.Context, plan models.Plan, customer Customer, txRef string) (*models.CheckoutSession, error) {
	if g.PublicKey == "" {
		return nil, fmt.Errorf("flutterwave public key: %w", utils.ErrServiceUnavailable)
	}
	return &models.CheckoutSession{
		Gateway:      GatewayFlutterwave,
		PlanID:       plan.ID,
		TxRef:        txRef,
		Amount:       plan.Amount,
		Currency:     plan.Currency,
		PublicKey:    g.PublicKey,
		CustomerMail: customer.Email,
	}, nil
}

type flwVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       int64          `json:"id"`
		TxRef    string         `json:"tx_ref"`
		Status   string         `json:"status"`
		Amount   float64        `json:"amount"`
		Currency string         `json:"currency"`
		Meta     map[string]any `json:"meta"`
	} `json:"data"`
}

func (g *FlutterwaveGateway) Verify(ctx context.Context, transactionID string) (*models.VerifiedPayment, error) {
	if g.SecretKey == "" {
		return nil, fmt.Errorf("flutterwave secret key: %w", utils.ErrServiceUnavailable)
	}
	endpoint := fmt.Sprintf("%s/transactions/%s/verify", g.BaseURL, url.PathEscape(transactionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)
	req.Header.Set("Accept", "application/json")

	client := g.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &utils.RemoteError{Service: GatewayFlutterwave, Err: err}
	}
	defer resp.Body.Close()

	var body flwVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &utils.RemoteError{Service: GatewayFlutterwave, Err: fmt.Errorf("decode verify response: %w", err)}
	}
	switch {
	case resp.StatusCode == http.StatusNotFound || (resp.StatusCode >= 400 && resp.StatusCode < 500):
		return nil, fmt.Errorf("transaction %s: %s: %w", transactionID, body.Message, utils.ErrPaymentRequired)
	case resp.StatusCode >= 500:
		return nil, &utils.RemoteError{Service: GatewayFlutterwave, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case body.Status != "success":
		return nil, fmt.Errorf("transaction %s: %s: %w", transactionID, body.Message, utils.ErrPaymentRequired)
	}

	return &models.VerifiedPayment{
		TransactionID: fmt.Sprint(body.Data.ID),
		TxRef:         body.Data.TxRef,
		Status:        strings.ToLower(body.Data.Status),
		Amount:        utils.MajorToMinor(body.Data.Amount),
		Currency:      body.Data.Currency,
		Metadata:      stringMeta(body.Data.Meta),
	}, nil
}

func stringMeta(meta map[string]any) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = fmt.Sprint(v)
	}
	return out
}
