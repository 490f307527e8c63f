package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS roles (id TEXT PRIMARY KEY, name TEXT NOT NULL UNIQUE);`)
	require.NoError(t, err)
	return db
}

func countRoles(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM roles`).Scan(&n))
	return n
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO roles(id, name) VALUES ('r1', 'Admin')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, countRoles(t, db), "must commit on success")
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO roles(id, name) VALUES ('r1', 'Admin')`)
		require.NoError(t, e)
		return errors.New("boom")
	})
	require.Error(t, err)
	require.Equal(t, 0, countRoles(t, db), "must rollback when fn returns error")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countRoles(t, db), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO roles(id, name) VALUES ('r1', 'Admin')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}

func TestReadSnapshot_OpensTransactionOnPool(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectCommit()

	err = ReadSnapshot(context.Background(), db, func(ctx context.Context, q DBTX) error {
		_, isTx := q.(*sql.Tx)
		require.True(t, isTx, "fn must receive the transaction")
		var n int
		return q.QueryRowContext(ctx, "SELECT 1").Scan(&n)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadSnapshot_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = ReadSnapshot(context.Background(), db, func(ctx context.Context, q DBTX) error {
		return errors.New("side query failed")
	})
	require.EqualError(t, err, "side query failed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadSnapshot_ReusesExistingTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	called := false
	err = ReadSnapshot(context.Background(), tx, func(ctx context.Context, q DBTX) error {
		called = true
		require.Same(t, tx, q)
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadSnapshot_KeepsInstrumentation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = ReadSnapshot(context.Background(), Instrument(db, m), func(ctx context.Context, q DBTX) error {
		inst, ok := q.(*Instrumented)
		require.True(t, ok, "fn must receive an instrumented handle")
		_, isTx := inst.inner.(*sql.Tx)
		require.True(t, isTx)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
