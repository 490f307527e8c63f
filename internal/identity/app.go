// Package identity wires configuration, the PostgreSQL pool, repositories
// and the account and role stores into one App.
package identity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/config"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/repomanager"
	"github.com/dmitrijs2005/gophidentity/internal/identity/store"
	"github.com/dmitrijs2005/gophidentity/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	accounts    *store.AccountStore
	roles       *store.RoleStore
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects to cfg.DatabaseDSN through the pgx driver, verifies the
// connection and builds an App whose statements are observed by collectors
// registered on reg (the default registerer when nil).
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger, reg prometheus.Registerer) (*App, error) {
	db, err := sqlOpen("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", dbx.Classify(err))
	}

	metrics, err := dbx.NewMetrics(reg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("metrics init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(metrics)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	app, err := NewApp(ctx, db, rm, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// NewApp builds the stores over an already opened pool. When
// cfg.AutoMigrate is set the schema is migrated first.
func NewApp(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) (*App, error) {
	app := &App{
		config:      cfg,
		logger:      logger.With("module", "identity"),
		db:          db,
		repomanager: rm,
		accounts:    store.NewAccountStore(db, rm, logger),
		roles:       store.NewRoleStore(db, rm, logger),
	}

	if cfg.AutoMigrate {
		if _, err := app.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	app.logger.Info(ctx, "identity store ready")
	return app, nil
}

func (app *App) Accounts() store.AccountCapabilities { return app.accounts }

func (app *App) Roles() store.RoleCapabilities { return app.roles }

// Migrate applies pending migrations and returns the resulting schema version.
func (app *App) Migrate(ctx context.Context) (int64, error) {
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration failed", "error", err)
		return 0, fmt.Errorf("migration error: %w", err)
	}
	version, err := app.repomanager.SchemaVersion(ctx, app.db)
	if err != nil {
		return 0, fmt.Errorf("migration error: %w", err)
	}
	app.logger.Info(ctx, "migrations applied", "version", version)
	return version, nil
}

func (app *App) Close() error {
	app.logger.Info(context.Background(), "closing identity store")
	return app.db.Close()
}
