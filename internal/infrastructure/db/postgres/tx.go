package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/baechuer/helpdesk/internal/domain"
)

// withTx runs fn in a read-committed transaction. Errors returned by fn pass through unchanged.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}

	defer func() {
		// Safety: in case fn panics, rollback to avoid leaked tx.
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.ErrDBUnavailable(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}
