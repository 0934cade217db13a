package adapter

import "context"

// GatewayOrder is the provider-side order created before checkout.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewayPayment is the provider-side view of a payment attempt.
type GatewayPayment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"` // created|authorized|captured|refunded|failed
}

// PaymentGateway wraps the third-party order / capture API.
type PaymentGateway interface {
	Name() string
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)
	// VerifySignature checks the checkout callback signature over
	// "orderID|paymentID" in constant time.
	VerifySignature(orderID, paymentID, signature string) bool
}
