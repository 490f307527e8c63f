// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/migrations"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/accounts"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/claims"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/logins"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/memberships"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/roles"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook. When metrics are set, every vended
// repository runs its statements through a dbx.Instrumented handle.
type PostgresRepositoryManager struct {
	metrics *dbx.Metrics
}

func (m *PostgresRepositoryManager) bind(db dbx.DBTX) dbx.DBTX {
	return dbx.Instrument(db, m.metrics)
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(m.bind(db))
}

// Roles returns a roles.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Roles(db dbx.DBTX) roles.Repository {
	return roles.NewPostgresRepository(m.bind(db))
}

// Claims returns a claims.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Claims(db dbx.DBTX) claims.Repository {
	return claims.NewPostgresRepository(m.bind(db))
}

// Logins returns a logins.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Logins(db dbx.DBTX) logins.Repository {
	return logins.NewPostgresRepository(m.bind(db))
}

// Memberships returns a memberships.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Memberships(db dbx.DBTX) memberships.Repository {
	return memberships.NewPostgresRepository(m.bind(db))
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseVersionContext is a seam for testing goose.GetDBVersionContext.
var gooseVersionContext = goose.GetDBVersionContext

func setupGoose() error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.SetDialect("pgx")
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// SchemaVersion reports the latest applied migration.
func (m *PostgresRepositoryManager) SchemaVersion(ctx context.Context, db *sql.DB) (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, err
	}
	return gooseVersionContext(ctx, db)
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
// metrics may be nil.
func NewPostgresRepositoryManager(metrics *dbx.Metrics) (RepositoryManager, error) {
	return &PostgresRepositoryManager{metrics: metrics}, nil
}
