package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

var _ repository.AdminRepository = (*adminRepo)(nil)

type adminRepo struct{ pool *pgxpool.Pool }

func NewAdminRepo(pool *pgxpool.Pool) *adminRepo {
	return &adminRepo{pool: pool}
}

func scanAdmin(row pgx.Row) (*model.Admin, error) {
	a := &model.Admin{}
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return a, nil
}

func (r *adminRepo) Save(ctx context.Context, tx repository.Tx, a *model.Admin) error {
	const q = `
INSERT INTO admins (id, email, password_hash, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET
  email=$2, password_hash=$3, updated_at=$5;`

	_, err := execSQL(ctx, r.pool, tx, q, a.ID, a.Email, a.PasswordHash, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *adminRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Admin, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT id, email, password_hash, created_at, updated_at FROM admins WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanAdmin(row)
}

func (r *adminRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Admin, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT id, email, password_hash, created_at, updated_at FROM admins WHERE email=$1;`, model.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return scanAdmin(row)
}
