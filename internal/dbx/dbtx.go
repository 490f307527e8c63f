// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// helpers to run functions inside a transaction or a read snapshot, error
// classification and query metrics.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// snapshotOptions are used for multi-statement reads that must observe one
// consistent state of the database.
var snapshotOptions = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// ReadSnapshot runs fn so that every statement it issues sees the same
// snapshot. A *sql.DB gets a read-only repeatable-read transaction; a handle
// that already is a transaction is used as is. Instrumented handles are
// unwrapped for the transaction and re-wrapped for fn.
func ReadSnapshot(ctx context.Context, db DBTX, fn func(ctx context.Context, q DBTX) error) error {
	switch h := db.(type) {
	case *sql.DB:
		return WithTx(ctx, h, snapshotOptions, fn)
	case *Instrumented:
		return ReadSnapshot(ctx, h.inner, func(ctx context.Context, q DBTX) error {
			return fn(ctx, Instrument(q, h.metrics))
		})
	default:
		return fn(ctx, db)
	}
}
