// Package logins persists the external provider logins bound to accounts.
package logins

import (
	"context"

	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

type Repository interface {
	// Insert binds login to the account. A (provider, key) pair already
	// owned by any account fails with common.ErrorDuplicateKey.
	Insert(ctx context.Context, accountID string, login models.ExternalLogin) error
	Delete(ctx context.Context, accountID string, login models.ExternalLogin) error
	// FindAccountIDByLogin returns common.ErrorNotFound when no account
	// owns the pair.
	FindAccountIDByLogin(ctx context.Context, provider, providerKey string) (string, error)
	FindAllByAccountID(ctx context.Context, accountID string) ([]models.ExternalLogin, error)
}
