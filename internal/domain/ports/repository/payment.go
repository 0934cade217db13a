package repository

import (
	"context"
	"time"

	"engagesphere/internal/domain/model"
)

type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByOrderID(ctx context.Context, tx Tx, orderID string) (*model.Payment, error)
	// UpdateStatus sets status and, when non-nil, payment id / signature / paid_at.
	UpdateStatus(ctx context.Context, tx Tx, orderID string, status model.PaymentStatus, paymentID, signature *string, paidAt *time.Time) error
	// MarkPaidIfCreated transitions created -> paid atomically; reports whether
	// a row actually moved (false means already paid/failed or missing).
	MarkPaidIfCreated(ctx context.Context, tx Tx, orderID, paymentID, signature string, paidAt time.Time) (bool, error)
}
