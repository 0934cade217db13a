package repository

import (
	"context"

	"engagesphere/internal/domain/model"
)

type CountryRepository interface {
	Save(ctx context.Context, tx Tx, c *model.Country) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Country, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Country, error)
}
