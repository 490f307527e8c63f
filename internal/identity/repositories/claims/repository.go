// Package claims persists the typed claims attached to accounts.
package claims

import (
	"context"

	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

type Repository interface {
	Insert(ctx context.Context, accountID string, claim models.Claim) error
	// Delete removes every claim of the account with the same type and
	// value. Nothing matching is not an error.
	Delete(ctx context.Context, accountID string, claim models.Claim) error
	FindAllByAccountID(ctx context.Context, accountID string) ([]models.Claim, error)
}
