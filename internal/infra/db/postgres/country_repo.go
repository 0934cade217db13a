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

var _ repository.CountryRepository = (*countryRepo)(nil)

type countryRepo struct{ pool *pgxpool.Pool }

func NewCountryRepo(pool *pgxpool.Pool) *countryRepo {
	return &countryRepo{pool: pool}
}

func (r *countryRepo) Save(ctx context.Context, tx repository.Tx, c *model.Country) error {
	const q = `
INSERT INTO countries (id, name, code, calling_code)
VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET name=$2, code=$3, calling_code=$4;`

	_, err := execSQL(ctx, r.pool, tx, q, c.ID, c.Name, c.Code, c.CallingCode)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *countryRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Country, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT id, name, code, calling_code FROM countries WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	c := &model.Country{}
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &c.CallingCode); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return c, nil
}

func (r *countryRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Country, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT id, name, code, calling_code FROM countries ORDER BY name ASC;`)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Country
	for rows.Next() {
		c := &model.Country{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CallingCode); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, c)
	}
	return out, nil
}
