//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
)

func seedSub(t *testing.T, subs *memSubRepo, userID string) *model.Subscription {
	t.Helper()
	sub, err := model.NewPendingSubscription(userID, "plan-1", "tier-1", "order-1", "USD", 2499)
	if err != nil {
		t.Fatalf("new subscription: %v", err)
	}
	sub.Activate("pay-1", time.Now(), nil)
	if err := subs.Save(context.Background(), nil, sub); err != nil {
		t.Fatalf("save: %v", err)
	}
	return sub
}

func TestCancelByOwner(t *testing.T) {
	subs := newMemSubRepo()
	plans := newMemPlanRepo()
	uc := NewSubscriptionUseCase(subs, plans)
	sub := seedSub(t, subs, "u1")

	got, err := uc.Cancel(context.Background(), Actor{UserID: "u1"}, sub.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Status != model.SubscriptionStatusCancelled || got.CancelledAt == nil {
		t.Fatalf("cancel did not apply: %+v", got)
	}
}

func TestCancelByAdmin(t *testing.T) {
	subs := newMemSubRepo()
	uc := NewSubscriptionUseCase(subs, newMemPlanRepo())
	sub := seedSub(t, subs, "u1")

	if _, err := uc.Cancel(context.Background(), Actor{UserID: "someone-else", IsAdmin: true}, sub.ID); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
}

func TestCancelByStrangerForbidden(t *testing.T) {
	subs := newMemSubRepo()
	uc := NewSubscriptionUseCase(subs, newMemPlanRepo())
	sub := seedSub(t, subs, "u1")

	_, err := uc.Cancel(context.Background(), Actor{UserID: "u2"}, sub.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	stored, _ := subs.FindByID(context.Background(), nil, sub.ID)
	if stored.Status != model.SubscriptionStatusActive {
		t.Fatalf("status = %q, want active (unchanged)", stored.Status)
	}
}

func TestListByUserForbiddenForOthers(t *testing.T) {
	subs := newMemSubRepo()
	uc := NewSubscriptionUseCase(subs, newMemPlanRepo())
	seedSub(t, subs, "u1")

	if _, err := uc.ListByUser(context.Background(), Actor{UserID: "u2"}, "u1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	got, err := uc.ListByUser(context.Background(), Actor{UserID: "u2", IsAdmin: true}, "u1")
	if err != nil || len(got) != 1 {
		t.Fatalf("admin list: got %d err %v", len(got), err)
	}
}

func TestRenewWithoutDuration(t *testing.T) {
	subs := newMemSubRepo()
	plans := newMemPlanRepo()
	uc := NewSubscriptionUseCase(subs, plans)

	plan := &model.Plan{ID: "plan-1", Name: "NoDuration", Status: model.PlanStatusActive}
	if err := plans.Save(context.Background(), nil, plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	sub := seedSub(t, subs, "u1")
	before, _ := subs.FindByID(context.Background(), nil, sub.ID)

	_, err := uc.Renew(context.Background(), Actor{UserID: "u1"}, sub.ID)
	if !errors.Is(err, domain.ErrNoPlanDuration) {
		t.Fatalf("err = %v, want ErrNoPlanDuration", err)
	}
	after, _ := subs.FindByID(context.Background(), nil, sub.ID)
	if !after.UpdatedAt.Equal(before.UpdatedAt) || after.Status != before.Status {
		t.Fatal("renew without duration must not mutate the subscription")
	}
}

func TestRenewRestartsWindow(t *testing.T) {
	subs := newMemSubRepo()
	plans := newMemPlanRepo()
	uc := NewSubscriptionUseCase(subs, plans)

	plan, err := model.NewPlan("Quarterly", 3, nil)
	if err != nil {
		t.Fatalf("new plan: %v", err)
	}
	plan.ID = "plan-1"
	if err := plans.Save(context.Background(), nil, plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	sub := seedSub(t, subs, "u1")
	sub.Cancel(time.Now())
	if err := subs.Save(context.Background(), nil, sub); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := uc.Renew(context.Background(), Actor{UserID: "u1"}, sub.ID)
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if got.Status != model.SubscriptionStatusActive || got.CancelledAt != nil {
		t.Fatalf("renew state: %+v", got)
	}
	want := got.StartedAt.AddDate(0, 3, 0)
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", got.ExpiresAt, want)
	}
}

func TestUpdateWithExplicitPrice(t *testing.T) {
	subs := newMemSubRepo()
	plans := newMemPlanRepo()
	uc := NewSubscriptionUseCase(subs, plans)

	plan, err := model.NewPlan("Growth", 1, []model.PricingTier{{PricingID: "tier-1", Price: "$24.99"}})
	if err != nil {
		t.Fatalf("new plan: %v", err)
	}
	if err := plans.Save(context.Background(), nil, plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	seedSub(t, subs, "u1")

	got, err := uc.Update(context.Background(), Actor{UserID: "u1"}, UpdateSubscriptionInput{
		PlanID:    plan.ID,
		PricingID: "tier-1",
		Price:     "$9.99",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Amount != 999 || got.Status != model.SubscriptionStatusActive {
		t.Fatalf("updated sub: %+v", got)
	}
}

func TestUpdateRejectsInvalidPrice(t *testing.T) {
	subs := newMemSubRepo()
	plans := newMemPlanRepo()
	uc := NewSubscriptionUseCase(subs, plans)

	plan, err := model.NewPlan("Growth", 1, []model.PricingTier{{PricingID: "tier-1", Price: "$24.99"}})
	if err != nil {
		t.Fatalf("new plan: %v", err)
	}
	if err := plans.Save(context.Background(), nil, plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	_, err = uc.Update(context.Background(), Actor{UserID: "u1"}, UpdateSubscriptionInput{
		PlanID:    plan.ID,
		PricingID: "tier-1",
		Price:     "free",
	})
	if !errors.Is(err, domain.ErrInvalidPrice) {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
}

func TestUpdateLeavesStatusAndWindowAlone(t *testing.T) {
	subs := newMemSubRepo()
	plans := newMemPlanRepo()
	uc := NewSubscriptionUseCase(subs, plans)

	sub := seedSub(t, subs, "u1")
	sub.Cancel(time.Now())
	if err := subs.Save(context.Background(), nil, sub); err != nil {
		t.Fatalf("save: %v", err)
	}
	before, _ := subs.FindByID(context.Background(), nil, sub.ID)

	got, err := uc.Update(context.Background(), Actor{UserID: "u1"}, UpdateSubscriptionInput{
		Price: "$9.99",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Amount != 999 {
		t.Fatalf("amount = %d, want 999", got.Amount)
	}
	// A billing edit must not hand out a fresh paid window.
	if got.Status != model.SubscriptionStatusCancelled || got.CancelledAt == nil {
		t.Fatalf("cancelled subscription reactivated without payment: %+v", got)
	}
	if !timePtrEqual(got.StartedAt, before.StartedAt) || !timePtrEqual(got.ExpiresAt, before.ExpiresAt) {
		t.Fatalf("window changed: started %v -> %v, expires %v -> %v",
			before.StartedAt, got.StartedAt, before.ExpiresAt, got.ExpiresAt)
	}
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func TestUpdateInPlaceWithoutPlanFields(t *testing.T) {
	subs := newMemSubRepo()
	uc := NewSubscriptionUseCase(subs, newMemPlanRepo())
	seedSub(t, subs, "u1")

	got, err := uc.Update(context.Background(), Actor{UserID: "u1"}, UpdateSubscriptionInput{
		Currency: "EUR",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Currency != "EUR" || got.PlanID != "plan-1" || got.PricingID != "tier-1" {
		t.Fatalf("in-place update: %+v", got)
	}
}

func TestUpdateEmptyInputRejected(t *testing.T) {
	subs := newMemSubRepo()
	uc := NewSubscriptionUseCase(subs, newMemPlanRepo())
	seedSub(t, subs, "u1")

	if _, err := uc.Update(context.Background(), Actor{UserID: "u1"}, UpdateSubscriptionInput{}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestUpdateByAdminForOtherUser(t *testing.T) {
	subs := newMemSubRepo()
	plans := newMemPlanRepo()
	uc := NewSubscriptionUseCase(subs, plans)

	plan, err := model.NewPlan("Growth", 2, []model.PricingTier{{PricingID: "tier-1", Price: "$24.99"}})
	if err != nil {
		t.Fatalf("new plan: %v", err)
	}
	if err := plans.Save(context.Background(), nil, plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	got, err := uc.Update(context.Background(), Actor{IsAdmin: true}, UpdateSubscriptionInput{
		UserID:    "u7",
		PlanID:    plan.ID,
		PricingID: "tier-1",
	})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if got.UserID != "u7" || got.Status != model.SubscriptionStatusActive || got.Amount != 2499 {
		t.Fatalf("granted sub: %+v", got)
	}
}

func TestUpdateForOtherUserForbidden(t *testing.T) {
	subs := newMemSubRepo()
	uc := NewSubscriptionUseCase(subs, newMemPlanRepo())
	seedSub(t, subs, "u2")

	_, err := uc.Update(context.Background(), Actor{UserID: "u1"}, UpdateSubscriptionInput{
		UserID: "u2",
		Price:  "$9.99",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestUpdateCreatesWhenNoExisting(t *testing.T) {
	subs := newMemSubRepo()
	plans := newMemPlanRepo()
	uc := NewSubscriptionUseCase(subs, plans)

	plan, err := model.NewPlan("Growth", 2, []model.PricingTier{{PricingID: "tier-1", Price: "$24.99"}})
	if err != nil {
		t.Fatalf("new plan: %v", err)
	}
	if err := plans.Save(context.Background(), nil, plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	got, err := uc.Update(context.Background(), Actor{UserID: "fresh-user"}, UpdateSubscriptionInput{
		PlanID:    plan.ID,
		PricingID: "tier-1",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.UserID != "fresh-user" || got.Status != model.SubscriptionStatusActive || got.Amount != 2499 {
		t.Fatalf("created sub: %+v", got)
	}
}
