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

var _ repository.ReceiptRepository = (*receiptRepo)(nil)

type receiptRepo struct{ pool *pgxpool.Pool }

func NewReceiptRepo(pool *pgxpool.Pool) *receiptRepo {
	return &receiptRepo{pool: pool}
}

const receiptColumns = `id, number, order_id, payment_id, user_id, payer_name, payer_email, plan_name, features, amount, currency, status, paid_at, created_at`

func (r *receiptRepo) Save(ctx context.Context, tx repository.Tx, rc *model.Receipt) error {
	features, err := json.Marshal(rc.Features)
	if err != nil {
		return domain.ErrInvalidArgument
	}

	// Receipts are immutable snapshots; no upsert.
	const q = `
INSERT INTO receipts (` + receiptColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14);`

	_, err = execSQL(ctx, r.pool, tx, q,
		rc.ID, rc.Number, rc.OrderID, rc.PaymentID, rc.UserID, rc.PayerName,
		rc.PayerEmail, rc.PlanName, features, rc.Amount, rc.Currency, rc.Status,
		rc.PaidAt, rc.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *receiptRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Receipt, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+receiptColumns+` FROM receipts WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}

	rc := &model.Receipt{}
	var features []byte
	if err := row.Scan(&rc.ID, &rc.Number, &rc.OrderID, &rc.PaymentID, &rc.UserID,
		&rc.PayerName, &rc.PayerEmail, &rc.PlanName, &features, &rc.Amount,
		&rc.Currency, &rc.Status, &rc.PaidAt, &rc.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &rc.Features); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return rc, nil
}
