// Package memberships persists the account/role link table.
package memberships

import "context"

type Repository interface {
	Insert(ctx context.Context, accountID, roleID string) error
	// Delete drops the link if present.
	Delete(ctx context.Context, accountID, roleID string) error
	// FindRoleNamesByAccountID returns the names of the account's roles,
	// sorted by name.
	FindRoleNamesByAccountID(ctx context.Context, accountID string) ([]string, error)
}
