package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"engagesphere/internal/config"
	"engagesphere/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*RazorpayGateway)(nil)

// RazorpayGateway implements adapter.PaymentGateway using direct HTTP calls
// against the Razorpay v1 API with basic auth.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayGateway(cfg *config.RazorpayConfig) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   cfg.BaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayPaymentResponse struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers a provider-side order for the given amount in minor
// units. The returned order ID is what the checkout widget and the later
// signature verification both key on.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*adapter.GatewayOrder, error) {
	requestData := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	url := g.baseURL + "/orders"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, gatewayError(resp.StatusCode, body)
	}

	var order razorpayOrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order response: %w, body: %s", err, string(body))
	}

	return &adapter.GatewayOrder{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Status:   order.Status,
	}, nil
}

// FetchPayment returns the provider's current view of a payment attempt,
// including its capture status.
func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*adapter.GatewayPayment, error) {
	url := g.baseURL + "/payments/" + paymentID
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, gatewayError(resp.StatusCode, body)
	}

	var p razorpayPaymentResponse
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment response: %w, body: %s", err, string(body))
	}

	return &adapter.GatewayPayment{
		ID:      p.ID,
		OrderID: p.OrderID,
		Amount:  p.Amount,
		Status:  p.Status,
	}, nil
}

// VerifySignature recomputes the checkout signature, HMAC-SHA256 over
// "orderID|paymentID" keyed with the API secret, and compares in constant
// time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func gatewayError(status int, body []byte) error {
	var er razorpayErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Description != "" {
		return fmt.Errorf("razorpay error: status %d, code %s: %s", status, er.Error.Code, er.Error.Description)
	}
	return fmt.Errorf("razorpay error: status %d, body: %s", status, string(body))
}
