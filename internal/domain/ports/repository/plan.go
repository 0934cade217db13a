package repository

import (
	"context"

	"engagesphere/internal/domain/model"
)

type PlanRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Plan) error
	Delete(ctx context.Context, tx Tx, id string) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Plan, error)
	FindByName(ctx context.Context, tx Tx, name string) (*model.Plan, error)
	// FindByPricingID locates the plan containing the given tier.
	FindByPricingID(ctx context.Context, tx Tx, pricingID string) (*model.Plan, error)
	List(ctx context.Context, tx Tx, search string, offset, limit int) ([]*model.Plan, error)
	Count(ctx context.Context, tx Tx, search string) (int, error)
}
