package repository

import (
	"context"

	"engagesphere/internal/domain/model"
)

// UserListFilter narrows and orders the admin user listing.
type UserListFilter struct {
	Search   string // matched case-insensitively against name and email
	SortBy   string // created_at | name | email
	SortDesc bool
	Offset   int
	Limit    int
}

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	FindByPhone(ctx context.Context, tx Tx, phone string) (*model.User, error)
	List(ctx context.Context, tx Tx, f UserListFilter) ([]*model.User, error)
	Count(ctx context.Context, tx Tx, search string) (int, error)
}
