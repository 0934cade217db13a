package usecase

import (
	"context"
	"time"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ PlanUseCase = (*planUC)(nil)

type UpdatePlanInput struct {
	Name           *string             `json:"name,omitempty"`
	Status         *model.PlanStatus   `json:"status,omitempty"`
	DurationMonths *int                `json:"durationMonths,omitempty"`
	Pricing        []model.PricingTier `json:"pricing,omitempty"` // upserted tier by tier
}

type PlanUseCase interface {
	Create(ctx context.Context, name string, durationMonths int, pricing []model.PricingTier) (*model.Plan, error)
	Update(ctx context.Context, planID string, in UpdatePlanInput) (*model.Plan, error)
	Delete(ctx context.Context, planID string) error
	DeletePricing(ctx context.Context, planID, pricingID string) (*model.Plan, error)
	GetByID(ctx context.Context, planID string) (*model.Plan, error)
	GetByName(ctx context.Context, name string) (*model.Plan, error)
	List(ctx context.Context, search string, offset, limit int) ([]*model.Plan, int, error)
}

type planUC struct {
	plans repository.PlanRepository
}

func NewPlanUseCase(plans repository.PlanRepository) *planUC {
	return &planUC{plans: plans}
}

func (u *planUC) Create(ctx context.Context, name string, durationMonths int, pricing []model.PricingTier) (*model.Plan, error) {
	for _, t := range pricing {
		if t.Price != "" {
			if _, err := model.ParsePriceMinor(t.Price); err != nil {
				return nil, err
			}
		}
	}
	plan, err := model.NewPlan(name, durationMonths, pricing)
	if err != nil {
		return nil, err
	}
	if err := u.plans.Save(ctx, nil, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (u *planUC) Update(ctx context.Context, planID string, in UpdatePlanInput) (*model.Plan, error) {
	plan, err := u.plans.FindByID(ctx, nil, planID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidArgument
		}
		plan.Name = *in.Name
	}
	if in.Status != nil {
		plan.Status = *in.Status
	}
	if in.DurationMonths != nil {
		if *in.DurationMonths < 0 {
			return nil, domain.ErrInvalidArgument
		}
		plan.DurationMonths = *in.DurationMonths
	}
	for _, t := range in.Pricing {
		if t.Price != "" {
			if _, err := model.ParsePriceMinor(t.Price); err != nil {
				return nil, err
			}
		}
		plan.UpsertTier(t)
	}
	plan.UpdatedAt = time.Now()
	if err := u.plans.Save(ctx, nil, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (u *planUC) Delete(ctx context.Context, planID string) error {
	return u.plans.Delete(ctx, nil, planID)
}

func (u *planUC) DeletePricing(ctx context.Context, planID, pricingID string) (*model.Plan, error) {
	plan, err := u.plans.FindByID(ctx, nil, planID)
	if err != nil {
		return nil, err
	}
	if !plan.RemoveTier(pricingID) {
		return nil, domain.ErrNotFound
	}
	if err := u.plans.Save(ctx, nil, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (u *planUC) GetByID(ctx context.Context, planID string) (*model.Plan, error) {
	return u.plans.FindByID(ctx, nil, planID)
}

func (u *planUC) GetByName(ctx context.Context, name string) (*model.Plan, error) {
	return u.plans.FindByName(ctx, nil, name)
}

func (u *planUC) List(ctx context.Context, search string, offset, limit int) ([]*model.Plan, int, error) {
	if limit <= 0 {
		limit = 20
	}
	plans, err := u.plans.List(ctx, nil, search, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.plans.Count(ctx, nil, search)
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}
