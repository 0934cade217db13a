package model

import (
	"time"

	"engagesphere/internal/domain"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// Subscription is the entitlement side of an order. It is correlated with a
// Payment through OrderID; the verification flow transitions both together.
type Subscription struct {
	ID        string             `json:"subscriptionId"`
	UserID    string             `json:"userId"`
	PlanID    string             `json:"planId"`
	PricingID string             `json:"pricingId"`
	OrderID   string             `json:"orderId"`
	PaymentID string             `json:"paymentId,omitempty"`
	Amount    int64              `json:"amount"` // minor units
	Currency  string             `json:"currency"`
	Status    SubscriptionStatus `json:"status"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewPendingSubscription creates the pending row written alongside a gateway
// order. It stays pending until payment verification activates it.
func NewPendingSubscription(userID, planID, pricingID, orderID, currency string, amount int64) (*Subscription, error) {
	if userID == "" || planID == "" || pricingID == "" || orderID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanID:    planID,
		PricingID: pricingID,
		OrderID:   orderID,
		Amount:    amount,
		Currency:  currency,
		Status:    SubscriptionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Activate moves the subscription to active with the window [startedAt, expiresAt].
func (s *Subscription) Activate(paymentID string, startedAt time.Time, expiresAt *time.Time) {
	s.PaymentID = paymentID
	s.Status = SubscriptionStatusActive
	s.StartedAt = &startedAt
	s.ExpiresAt = expiresAt
	s.UpdatedAt = time.Now()
}

// Cancel marks the subscription cancelled at the given instant.
func (s *Subscription) Cancel(at time.Time) {
	s.Status = SubscriptionStatusCancelled
	s.CancelledAt = &at
	s.UpdatedAt = at
}

// OwnedBy reports whether userID owns this subscription.
func (s *Subscription) OwnedBy(userID string) bool { return s.UserID == userID }
