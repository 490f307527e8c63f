// Package accounts declares the account repository contract and its
// PostgreSQL implementation, which hydrates accounts with their claims,
// external logins and role names.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

// Repository persists account rows and reads fully hydrated aggregates.
// Every getter returns zero or more accounts; an empty slice means no match.
type Repository interface {
	// Insert creates exactly one row. Id collisions surface as duplicate key errors.
	Insert(ctx context.Context, account *models.Account) error

	// Update replaces every mutable scalar column of the row matched by ID.
	// Matching no row is not an error.
	Update(ctx context.Context, account *models.Account) error

	// Delete removes the row; the schema cascades to claims, logins and roles.
	Delete(ctx context.Context, id string) error

	GetAll(ctx context.Context) ([]*models.Account, error)
	GetByID(ctx context.Context, id string) ([]*models.Account, error)
	GetByName(ctx context.Context, userName string) ([]*models.Account, error)
	GetByEmail(ctx context.Context, email string) ([]*models.Account, error)
}
