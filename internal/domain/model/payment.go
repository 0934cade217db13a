package model

import "time"

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created" // gateway order created, awaiting capture
	PaymentStatusPaid    PaymentStatus = "paid"    // signature verified and capture confirmed
	PaymentStatusFailed  PaymentStatus = "failed"  // signature mismatch or explicit failure
)

// Payment records one gateway order. The only legal transitions are
// created -> paid and created -> failed; a non-captured gateway status is
// persisted verbatim (e.g. "authorized") and still counts as not paid.
type Payment struct {
	OrderID   string        `json:"orderId"`
	PaymentID string        `json:"paymentId,omitempty"` // gateway payment id, set on verification
	Signature string        `json:"-"`
	Amount    int64         `json:"amount"` // minor units
	Currency  string        `json:"currency"`
	Receipt   string        `json:"receipt,omitempty"` // gateway receipt label
	UserID    string        `json:"userId"`
	PlanID    string        `json:"planId"`
	PricingID string        `json:"pricingId"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	PaidAt    *time.Time    `json:"paidAt,omitempty"`
}
