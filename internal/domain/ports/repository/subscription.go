package repository

import (
	"context"

	"engagesphere/internal/domain/model"
)

type SubscriptionRepository interface {
	Save(ctx context.Context, tx Tx, s *model.Subscription) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Subscription, error)
	FindByOrderID(ctx context.Context, tx Tx, orderID string) (*model.Subscription, error)
	// FindLatestByUser returns the newest subscription for the user, or ErrNotFound.
	FindLatestByUser(ctx context.Context, tx Tx, userID string) (*model.Subscription, error)
	// ListByUser returns the user's subscriptions newest first.
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Subscription, error)
	CountByStatus(ctx context.Context, tx Tx) (map[string]int, error)
}
