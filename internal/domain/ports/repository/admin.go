package repository

import (
	"context"

	"engagesphere/internal/domain/model"
)

type AdminRepository interface {
	Save(ctx context.Context, tx Tx, a *model.Admin) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Admin, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.Admin, error)
}
