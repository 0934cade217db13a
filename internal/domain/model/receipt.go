package model

import (
	"math/rand"
	"time"

	"engagesphere/internal/domain"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Receipt is an immutable snapshot of a payment taken at generation time.
// Viewing a receipt later re-renders from this snapshot, never from the
// (possibly changed) Payment row.
type Receipt struct {
	ID        string    `json:"receiptId"`
	Number    string    `json:"number"` // ULID; sortable, printed on the PDF
	OrderID   string    `json:"orderId"`
	PaymentID string    `json:"paymentId"`
	UserID    string    `json:"userId"`

	PayerName  string   `json:"payerName"`
	PayerEmail string   `json:"payerEmail"`
	PlanName   string   `json:"planName"`
	Features   []string `json:"features,omitempty"`

	Amount   int64      `json:"amount"` // minor units
	Currency string     `json:"currency"`
	Status   string     `json:"status"`
	PaidAt   *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewReceipt snapshots a payment for a user. The plan name and features are
// captured here because plans are mutable.
func NewReceipt(p *Payment, u *User, planName string, features []string) (*Receipt, error) {
	if p == nil || u == nil {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	return &Receipt{
		ID:         uuid.NewString(),
		Number:     ulid.MustNew(ulid.Timestamp(now), entropy).String(),
		OrderID:    p.OrderID,
		PaymentID:  p.PaymentID,
		UserID:     u.ID,
		PayerName:  u.Name,
		PayerEmail: u.Email,
		PlanName:   planName,
		Features:   features,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		PaidAt:     p.PaidAt,
		CreatedAt:  now,
	}, nil
}
