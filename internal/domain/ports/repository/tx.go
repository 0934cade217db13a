package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

var NoTX interface{}

// TransactionManager executes a function within a database transaction,
// passing the transaction handle via `tx`.
//
// Use-case interfaces stay clean (no driver types leak out); repository
// methods accept `tx Tx` and detect a transactional executor on the infra
// side. Repositories MUST gracefully accept a nil tx (pool path).
//
//	tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
//		p, err := payments.FindByOrderID(ctx, tx, orderID)
//		...
//		return err
//	})
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
