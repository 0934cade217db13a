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

var _ repository.PlanRepository = (*planRepo)(nil)

// planRepo stores pricing tiers denormalized in a JSONB column; tier lookups
// use the jsonb containment operator rather than a join table.
type planRepo struct{ pool *pgxpool.Pool }

func NewPlanRepo(pool *pgxpool.Pool) *planRepo {
	return &planRepo{pool: pool}
}

const planColumns = `id, name, status, duration_months, pricing, created_at, updated_at`

func scanPlan(row pgx.Row) (*model.Plan, error) {
	p := &model.Plan{}
	var pricing []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Status, &p.DurationMonths, &pricing, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if len(pricing) > 0 {
		if err := json.Unmarshal(pricing, &p.Pricing); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return p, nil
}

func (r *planRepo) Save(ctx context.Context, tx repository.Tx, p *model.Plan) error {
	pricing, err := json.Marshal(p.Pricing)
	if err != nil {
		return domain.ErrInvalidArgument
	}

	const q = `
INSERT INTO plans (` + planColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  name=$2, status=$3, duration_months=$4, pricing=$5, updated_at=$7;`

	_, err = execSQL(ctx, r.pool, tx, q, p.ID, p.Name, p.Status, p.DurationMonths, pricing, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *planRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	cmd, err := execSQL(ctx, r.pool, tx, `DELETE FROM plans WHERE id=$1;`, id)
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

func (r *planRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Plan, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+planColumns+` FROM plans WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanPlan(row)
}

func (r *planRepo) FindByName(ctx context.Context, tx repository.Tx, name string) (*model.Plan, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+planColumns+` FROM plans WHERE LOWER(name)=LOWER($1);`, name)
	if err != nil {
		return nil, err
	}
	return scanPlan(row)
}

func (r *planRepo) FindByPricingID(ctx context.Context, tx repository.Tx, pricingID string) (*model.Plan, error) {
	const q = `SELECT ` + planColumns + ` FROM plans WHERE pricing @> jsonb_build_array(jsonb_build_object('pricingId', $1::text)) LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, pricingID)
	if err != nil {
		return nil, err
	}
	return scanPlan(row)
}

func (r *planRepo) List(ctx context.Context, tx repository.Tx, search string, offset, limit int) ([]*model.Plan, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	const q = `SELECT ` + planColumns + `
FROM plans
WHERE ($1 = '' OR name ILIKE '%'||$1||'%')
ORDER BY created_at DESC
OFFSET $2 LIMIT $3;`

	rows, err := queryRows(ctx, r.pool, tx, q, search, offset, limit)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *planRepo) Count(ctx context.Context, tx repository.Tx, search string) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM plans WHERE ($1 = '' OR name ILIKE '%'||$1||'%');`, search)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
