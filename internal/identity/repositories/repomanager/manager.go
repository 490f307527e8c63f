package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophidentity/internal/dbx"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/accounts"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/claims"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/logins"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/memberships"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/roles"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	SchemaVersion(context.Context, *sql.DB) (int64, error)
	Accounts(db dbx.DBTX) accounts.Repository
	Roles(db dbx.DBTX) roles.Repository
	Claims(db dbx.DBTX) claims.Repository
	Logins(db dbx.DBTX) logins.Repository
	Memberships(db dbx.DBTX) memberships.Repository
}
