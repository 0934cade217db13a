package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

var _ repository.ContactRepository = (*contactRepo)(nil)

type contactRepo struct{ pool *pgxpool.Pool }

func NewContactRepo(pool *pgxpool.Pool) *contactRepo {
	return &contactRepo{pool: pool}
}

func (r *contactRepo) Save(ctx context.Context, tx repository.Tx, c *model.Contact) error {
	const q = `
INSERT INTO contacts (id, name, email, service_type, platform, message, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);`

	_, err := execSQL(ctx, r.pool, tx, q, c.ID, c.Name, c.Email, c.ServiceType, c.Platform, c.Message, c.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *contactRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Contact, error) {
	const q = `SELECT id, name, email, service_type, platform, message, created_at FROM contacts ORDER BY created_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Contact
	for rows.Next() {
		c := &model.Contact{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ServiceType, &c.Platform, &c.Message, &c.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, c)
	}
	return out, nil
}
