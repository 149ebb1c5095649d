package repository

import (
	"context"
	"database/sql"
)

// withTx runs fn in a transaction on a dedicated connection. It commits when fn
// succeeds and rolls back otherwise; the connection is always released.
// Driver errors come back as *StorageError tagged with op. No deadline is added
// to ctx; a locked file is waited on for the DSN's busy timeout.
func withTx(ctx context.Context, db *sql.DB, op string, fn func(tx *sql.Tx) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		if passthrough(err) {
			return err
		}
		return &StorageError{Op: op, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: op, Err: err}
	}
	return nil
}
