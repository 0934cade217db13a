package repository

import (
	"context"

	"engagesphere/internal/domain/model"
)

type ServiceRepository interface {
	Save(ctx context.Context, tx Tx, s *model.Service) error
	Delete(ctx context.Context, tx Tx, id string) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Service, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Service, error)
}
