package usecase

import (
	"context"
	"errors"
	"time"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// Actor identifies who is performing a subscription operation. Admins may act
// on any subscription; users only on their own.
type Actor struct {
	UserID  string
	IsAdmin bool
}

func (a Actor) mayTouch(s *model.Subscription) bool {
	return a.IsAdmin || s.OwnedBy(a.UserID)
}

type UpdateSubscriptionInput struct {
	UserID    string `json:"userId"` // target user; admins may set it, users may only name themselves
	PlanID    string `json:"planId"`
	PricingID string `json:"pricingId"`
	Currency  string `json:"currency"`
	Price     string `json:"price"` // display price, e.g. "$24.99"
}

type SubscriptionUseCase interface {
	ListByUser(ctx context.Context, actor Actor, userID string) ([]*model.Subscription, error)
	Cancel(ctx context.Context, actor Actor, subscriptionID string) (*model.Subscription, error)
	// Update mutates the billing fields of the target user's latest
	// subscription in place, leaving its status and paid window alone, or
	// creates a fresh active one when none exists.
	Update(ctx context.Context, actor Actor, in UpdateSubscriptionInput) (*model.Subscription, error)
	Renew(ctx context.Context, actor Actor, subscriptionID string) (*model.Subscription, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type subscriptionUC struct {
	subs  repository.SubscriptionRepository
	plans repository.PlanRepository
}

func NewSubscriptionUseCase(subs repository.SubscriptionRepository, plans repository.PlanRepository) *subscriptionUC {
	return &subscriptionUC{subs: subs, plans: plans}
}

func (u *subscriptionUC) ListByUser(ctx context.Context, actor Actor, userID string) ([]*model.Subscription, error) {
	if !actor.IsAdmin && actor.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return u.subs.ListByUser(ctx, nil, userID)
}

func (u *subscriptionUC) Cancel(ctx context.Context, actor Actor, subscriptionID string) (*model.Subscription, error) {
	sub, err := u.subs.FindByID(ctx, nil, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !actor.mayTouch(sub) {
		return nil, domain.ErrForbidden
	}
	if sub.Status == model.SubscriptionStatusCancelled {
		return sub, nil
	}
	sub.Cancel(time.Now())
	if err := u.subs.Save(ctx, nil, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (u *subscriptionUC) Update(ctx context.Context, actor Actor, in UpdateSubscriptionInput) (*model.Subscription, error) {
	target := in.UserID
	if target == "" {
		target = actor.UserID
	}
	if target == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !actor.IsAdmin && target != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if in.PlanID == "" && in.PricingID == "" && in.Currency == "" && in.Price == "" {
		return nil, domain.ErrInvalidArgument
	}

	now := time.Now()
	sub, err := u.subs.FindLatestByUser(ctx, nil, target)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return u.createManual(ctx, target, in, now)
	}

	// In-place update touches billing fields only. The status and the paid
	// window never change here; activation belongs to payment verification
	// and Renew.
	var plan *model.Plan
	if in.PlanID != "" {
		if plan, err = u.plans.FindByID(ctx, nil, in.PlanID); err != nil {
			return nil, err
		}
		sub.PlanID = plan.ID
	}
	if in.PricingID != "" {
		if plan == nil {
			if plan, err = u.plans.FindByID(ctx, nil, sub.PlanID); err != nil {
				return nil, err
			}
		}
		if plan.Tier(in.PricingID) == nil {
			return nil, domain.ErrNotFound
		}
		sub.PricingID = in.PricingID
	}
	if in.Currency != "" {
		sub.Currency = in.Currency
	}
	switch {
	case in.Price != "":
		amount, err := model.ParsePriceMinor(in.Price)
		if err != nil {
			return nil, err
		}
		sub.Amount = amount
	case in.PricingID != "":
		amount, err := model.ParsePriceMinor(plan.Tier(in.PricingID).Price)
		if err != nil {
			return nil, err
		}
		sub.Amount = amount
	}
	sub.UpdatedAt = now

	if err := u.subs.Save(ctx, nil, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// createManual writes a subscription that was never paid through the gateway,
// e.g. granted from the admin panel. It starts active with the plan's window.
func (u *subscriptionUC) createManual(ctx context.Context, userID string, in UpdateSubscriptionInput, now time.Time) (*model.Subscription, error) {
	if in.PlanID == "" || in.PricingID == "" {
		return nil, domain.ErrInvalidArgument
	}
	plan, err := u.plans.FindByID(ctx, nil, in.PlanID)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	var amount int64
	if in.Price != "" {
		if amount, err = model.ParsePriceMinor(in.Price); err != nil {
			return nil, err
		}
	} else {
		tier := plan.Tier(in.PricingID)
		if tier == nil {
			return nil, domain.ErrNotFound
		}
		if amount, err = model.ParsePriceMinor(tier.Price); err != nil {
			return nil, err
		}
	}

	sub, err := model.NewPendingSubscription(userID, plan.ID, in.PricingID, "manual_"+now.Format("20060102150405"), currency, amount)
	if err != nil {
		return nil, err
	}
	sub.Status = model.SubscriptionStatusActive
	sub.StartedAt = &now
	sub.ExpiresAt = plan.ExpiryFrom(now)
	sub.UpdatedAt = now

	if err := u.subs.Save(ctx, nil, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Renew restarts the subscription window from now. Plans without a configured
// duration cannot be renewed; nothing is written in that case.
func (u *subscriptionUC) Renew(ctx context.Context, actor Actor, subscriptionID string) (*model.Subscription, error) {
	sub, err := u.subs.FindByID(ctx, nil, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !actor.mayTouch(sub) {
		return nil, domain.ErrForbidden
	}
	plan, err := u.plans.FindByID(ctx, nil, sub.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.DurationMonths <= 0 {
		return nil, domain.ErrNoPlanDuration
	}

	now := time.Now()
	sub.Status = model.SubscriptionStatusActive
	sub.StartedAt = &now
	sub.ExpiresAt = plan.ExpiryFrom(now)
	sub.CancelledAt = nil
	sub.UpdatedAt = now

	if err := u.subs.Save(ctx, nil, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (u *subscriptionUC) CountByStatus(ctx context.Context) (map[string]int, error) {
	return u.subs.CountByStatus(ctx, nil)
}
