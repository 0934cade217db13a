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

var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct{ pool *pgxpool.Pool }

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

const subColumns = `id, user_id, plan_id, pricing_id, order_id, payment_id, amount, currency, status, started_at, expires_at, cancelled_at, created_at, updated_at`

func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	s := &model.Subscription{}
	if err := row.Scan(&s.ID, &s.UserID, &s.PlanID, &s.PricingID, &s.OrderID, &s.PaymentID,
		&s.Amount, &s.Currency, &s.Status, &s.StartedAt, &s.ExpiresAt, &s.CancelledAt,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}

func (r *subscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (` + subColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
  user_id=$2, plan_id=$3, pricing_id=$4, order_id=$5, payment_id=$6, amount=$7,
  currency=$8, status=$9, started_at=$10, expires_at=$11, cancelled_at=$12,
  updated_at=$14;`

	_, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.UserID, s.PlanID, s.PricingID, s.OrderID, s.PaymentID, s.Amount,
		s.Currency, s.Status, s.StartedAt, s.ExpiresAt, s.CancelledAt, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *subscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	q := `SELECT ` + subColumns + ` FROM subscriptions WHERE id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row)
}

func (r *subscriptionRepo) FindByOrderID(ctx context.Context, tx repository.Tx, orderID string) (*model.Subscription, error) {
	q := `SELECT ` + subColumns + ` FROM subscriptions WHERE order_id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, orderID)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row)
}

func (r *subscriptionRepo) FindLatestByUser(ctx context.Context, tx repository.Tx, userID string) (*model.Subscription, error) {
	const q = `SELECT ` + subColumns + ` FROM subscriptions WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row)
}

func (r *subscriptionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Subscription, error) {
	const q = `SELECT ` + subColumns + ` FROM subscriptions WHERE user_id=$1 ORDER BY created_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *subscriptionRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT status, COUNT(*) FROM subscriptions GROUP BY status;`)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out[status] = n
	}
	return out, nil
}
