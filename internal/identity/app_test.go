package identity

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/config"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/accounts"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/claims"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/logins"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/memberships"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/roles"
	"github.com/dmitrijs2005/gophidentity/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	migrateErr error
	migrations int
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrations++
	return m.migrateErr
}
func (m *fakeRepoManager) SchemaVersion(context.Context, *sql.DB) (int64, error) { return 1, nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository              { return nil }
func (m *fakeRepoManager) Roles(db dbx.DBTX) roles.Repository                    { return nil }
func (m *fakeRepoManager) Claims(db dbx.DBTX) claims.Repository                  { return nil }
func (m *fakeRepoManager) Logins(db dbx.DBTX) logins.Repository                  { return nil }
func (m *fakeRepoManager) Memberships(db dbx.DBTX) memberships.Repository        { return nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func withSQLOpen(t *testing.T, fn func(driver, dsn string) (*sql.DB, error)) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = fn
	t.Cleanup(func() { sqlOpen = orig })
}

func TestNewApp_AutoMigrate(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig()
	cfg.AutoMigrate = true
	rm := &fakeRepoManager{}

	app, err := NewApp(context.Background(), db, rm, cfg, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 1, rm.migrations)
	assert.NotNil(t, app.Accounts())
	assert.NotNil(t, app.Roles())
}

func TestNewApp_SkipsMigrationsByDefault(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rm := &fakeRepoManager{}
	_, err = NewApp(context.Background(), db, rm, testConfig(), logging.Discard())
	require.NoError(t, err)
	assert.Zero(t, rm.migrations)
}

func TestNewApp_MigrationError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig()
	cfg.AutoMigrate = true

	_, err = NewApp(context.Background(), db, &fakeRepoManager{migrateErr: errors.New("boom")}, cfg, logging.Discard())
	require.EqualError(t, err, "migration error: boom")
}

func TestMigrate_ReturnsVersion(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app, err := NewApp(context.Background(), db, &fakeRepoManager{}, testConfig(), logging.Discard())
	require.NoError(t, err)

	v, err := app.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestOpen_PingsAndAppliesPoolSettings(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	var gotDriver, gotDSN string
	withSQLOpen(t, func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return db, nil
	})

	mock.ExpectPing()
	mock.ExpectClose()

	cfg := testConfig()
	cfg.MaxOpenConns = 3

	app, err := Open(context.Background(), cfg, logging.Discard(), prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, "pgx", gotDriver)
	assert.Equal(t, cfg.DatabaseDSN, gotDSN)
	assert.Equal(t, 3, db.Stats().MaxOpenConnections)

	require.NoError(t, app.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_PingFailureIsClassified(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	withSQLOpen(t, func(string, string) (*sql.DB, error) { return db, nil })

	mock.ExpectPing().WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	mock.ExpectClose()

	_, err = Open(context.Background(), testConfig(), logging.Discard(), prometheus.NewRegistry())
	require.ErrorIs(t, err, common.ErrorStorageUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_SQLOpenError(t *testing.T) {
	withSQLOpen(t, func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") })

	_, err := Open(context.Background(), testConfig(), logging.Discard(), prometheus.NewRegistry())
	require.EqualError(t, err, "db init error: no driver")
}
