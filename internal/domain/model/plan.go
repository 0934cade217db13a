package model

import (
	"time"

	"engagesphere/internal/domain"

	"github.com/google/uuid"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "Active"
	PlanStatusInactive PlanStatus = "Inactive"
	PlanStatusPending  PlanStatus = "Pending"
)

// PricingTier is one purchasable option inside a plan. The display price is a
// string ("$24.99"); ParsePriceMinor converts it when money actually moves.
type PricingTier struct {
	PricingID   string   `json:"pricingId"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	IsPopular   bool     `json:"isPopular,omitempty"`
}

// Plan is a sellable growth package with embedded pricing tiers.
// Tiers are stored denormalized (JSONB column) and are unique by PricingID.
type Plan struct {
	ID             string        `json:"planId"`
	Name           string        `json:"name"`
	Status         PlanStatus    `json:"status"`
	DurationMonths int           `json:"durationMonths"`
	Pricing        []PricingTier `json:"pricing"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func NewPlan(name string, durationMonths int, pricing []PricingTier) (*Plan, error) {
	if name == "" || durationMonths < 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	p := &Plan{
		ID:             uuid.NewString(),
		Name:           name,
		Status:         PlanStatusActive,
		DurationMonths: durationMonths,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, t := range pricing {
		p.UpsertTier(t)
	}
	return p, nil
}

func (p *Plan) IsZero() bool { return p == nil || p.ID == "" }

// Tier returns the pricing tier with the given id, or nil.
func (p *Plan) Tier(pricingID string) *PricingTier {
	for i := range p.Pricing {
		if p.Pricing[i].PricingID == pricingID {
			return &p.Pricing[i]
		}
	}
	return nil
}

// UpsertTier replaces the tier matching t.PricingID or appends a new one.
// A missing PricingID gets a fresh UUID so tiers stay addressable.
func (p *Plan) UpsertTier(t PricingTier) {
	if t.PricingID == "" {
		t.PricingID = uuid.NewString()
	}
	for i := range p.Pricing {
		if p.Pricing[i].PricingID == t.PricingID {
			p.Pricing[i] = t
			p.UpdatedAt = time.Now()
			return
		}
	}
	p.Pricing = append(p.Pricing, t)
	p.UpdatedAt = time.Now()
}

// RemoveTier deletes a tier by id; returns false when no tier matched.
func (p *Plan) RemoveTier(pricingID string) bool {
	for i := range p.Pricing {
		if p.Pricing[i].PricingID == pricingID {
			p.Pricing = append(p.Pricing[:i], p.Pricing[i+1:]...)
			p.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// ExpiryFrom computes the subscription expiry for this plan starting at t.
// Returns nil when the plan has no duration configured.
func (p *Plan) ExpiryFrom(t time.Time) *time.Time {
	if p.DurationMonths <= 0 {
		return nil
	}
	e := t.AddDate(0, p.DurationMonths, 0)
	return &e
}
