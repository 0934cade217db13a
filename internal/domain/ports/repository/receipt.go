package repository

import (
	"context"

	"engagesphere/internal/domain/model"
)

type ReceiptRepository interface {
	Save(ctx context.Context, tx Tx, r *model.Receipt) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Receipt, error)
}
