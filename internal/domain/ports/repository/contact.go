package repository

import (
	"context"

	"engagesphere/internal/domain/model"
)

type ContactRepository interface {
	Save(ctx context.Context, tx Tx, c *model.Contact) error
	// ListAll returns submissions newest first.
	ListAll(ctx context.Context, tx Tx) ([]*model.Contact, error)
}
