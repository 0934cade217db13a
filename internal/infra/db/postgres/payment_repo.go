package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*paymentRepo)(nil)

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

const paymentColumns = `order_id, payment_id, signature, amount, currency, receipt, user_id, plan_id, pricing_id, status, created_at, paid_at`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	if err := row.Scan(&p.OrderID, &p.PaymentID, &p.Signature, &p.Amount, &p.Currency,
		&p.Receipt, &p.UserID, &p.PlanID, &p.PricingID, &p.Status, &p.CreatedAt, &p.PaidAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *paymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (` + paymentColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12);`

	_, err := execSQL(ctx, r.pool, tx, q,
		p.OrderID, p.PaymentID, p.Signature, p.Amount, p.Currency, p.Receipt,
		p.UserID, p.PlanID, p.PricingID, p.Status, p.CreatedAt, p.PaidAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) FindByOrderID(ctx context.Context, tx repository.Tx, orderID string) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, orderID)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) UpdateStatus(ctx context.Context, tx repository.Tx, orderID string, status model.PaymentStatus, paymentID, signature *string, paidAt *time.Time) error {
	const q = `
UPDATE payments
   SET status=$2,
       payment_id=COALESCE($3, payment_id),
       signature=COALESCE($4, signature),
       paid_at=COALESCE($5, paid_at)
 WHERE order_id=$1;`

	cmd, err := execSQL(ctx, r.pool, tx, q, orderID, status, paymentID, signature, paidAt)
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

// MarkPaidIfCreated guards the created -> paid transition at the SQL level so
// a replayed verify callback cannot double-activate.
func (r *paymentRepo) MarkPaidIfCreated(ctx context.Context, tx repository.Tx, orderID, paymentID, signature string, paidAt time.Time) (bool, error) {
	const q = `
UPDATE payments
   SET status='paid', payment_id=$2, signature=$3, paid_at=$4
 WHERE order_id=$1
   AND status='created';`

	cmd, err := execSQL(ctx, r.pool, tx, q, orderID, paymentID, signature, paidAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}
