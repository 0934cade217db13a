package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

var _ repository.ServiceRepository = (*serviceRepo)(nil)

type serviceRepo struct{ pool *pgxpool.Pool }

func NewServiceRepo(pool *pgxpool.Pool) *serviceRepo {
	return &serviceRepo{pool: pool}
}

const serviceColumns = `id, heading, description, content, logo, created_at, updated_at`

func scanService(row pgx.Row) (*model.Service, error) {
	s := &model.Service{}
	var content []byte
	if err := row.Scan(&s.ID, &s.Heading, &s.Description, &content, &s.Logo, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &s.Content); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return s, nil
}

func (r *serviceRepo) Save(ctx context.Context, tx repository.Tx, s *model.Service) error {
	content, err := json.Marshal(s.Content)
	if err != nil {
		return domain.ErrInvalidArgument
	}

	const q = `
INSERT INTO services (` + serviceColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  heading=$2, description=$3, content=$4, logo=$5, updated_at=$7;`

	_, err = execSQL(ctx, r.pool, tx, q, s.ID, s.Heading, s.Description, content, s.Logo, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *serviceRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	cmd, err := execSQL(ctx, r.pool, tx, `DELETE FROM services WHERE id=$1;`, id)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *serviceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Service, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+serviceColumns+` FROM services WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanService(row)
}

func (r *serviceRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Service, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT `+serviceColumns+` FROM services ORDER BY created_at DESC;`)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
