// Package roles declares the server-side repository contract for roles and
// its PostgreSQL implementation.
package roles

import (
	"context"

	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

// Repository defines role persistence and the name/id resolution helpers
// used by the membership flow. Lookups that miss return common.ErrorNotFound.
type Repository interface {
	Insert(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id string) error

	GetAll(ctx context.Context) ([]*models.Role, error)
	GetByID(ctx context.Context, id string) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)

	// ResolveIDByName returns the id of the role called name.
	ResolveIDByName(ctx context.Context, name string) (string, error)
	// ResolveNameByID returns the name of the role with the given id.
	ResolveNameByID(ctx context.Context, id string) (string, error)
}
