package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// WithTx executes fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
// If fn panics, the transaction is rolled back and the panic is re-raised.
// If fn succeeds, the transaction is committed.
// Statements run on tx are not recorded in the query log.
func WithTx(ctx context.Context, h *Helper, fn func(tx *sqlx.Tx) error) error {
	conn, err := h.conn(ctx)
	if err != nil {
		return err
	}

	h.record(ctx, "BEGIN")
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		h.record(ctx, "ROLLBACK")
		return err
	}

	h.record(ctx, "COMMIT")
	return tx.Commit()
}
