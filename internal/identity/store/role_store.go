package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
	"github.com/dmitrijs2005/gophidentity/internal/identity/repositories/repomanager"
	"github.com/dmitrijs2005/gophidentity/internal/logging"
)

// RoleStore implements RoleCapabilities.
type RoleStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewRoleStore(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *RoleStore {
	return &RoleStore{
		db:          db,
		repomanager: m,
		log:         log.With("module", "role_store"),
	}
}

// Create inserts role. A taken name fails with common.ErrorDuplicateKey.
func (s *RoleStore) Create(ctx context.Context, role *models.Role) error {
	if err := validateRole(role); err != nil {
		return err
	}
	if err := s.repomanager.Roles(s.db).Insert(ctx, role); err != nil {
		return fmt.Errorf("error creating role: %w", err)
	}
	return nil
}

func (s *RoleStore) Update(ctx context.Context, role *models.Role) error {
	if err := validateRole(role); err != nil {
		return err
	}
	if err := s.repomanager.Roles(s.db).Update(ctx, role); err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}
	return nil
}

// Delete removes the role by ID together with its memberships.
func (s *RoleStore) Delete(ctx context.Context, role *models.Role) error {
	if err := validateRoleRef(role); err != nil {
		return err
	}
	if err := s.repomanager.Roles(s.db).Delete(ctx, role.ID); err != nil {
		return fmt.Errorf("error deleting role: %w", err)
	}
	s.log.Info(ctx, "role deleted", "role_id", role.ID, "role", role.Name)
	return nil
}

func (s *RoleStore) FindByID(ctx context.Context, id string) (*models.Role, error) {
	if err := requireString("role id", id); err != nil {
		return nil, err
	}
	return absentAsNil(s.repomanager.Roles(s.db).GetByID(ctx, id))
}

func (s *RoleStore) FindByName(ctx context.Context, name string) (*models.Role, error) {
	if err := requireString("role name", name); err != nil {
		return nil, err
	}
	return absentAsNil(s.repomanager.Roles(s.db).GetByName(ctx, name))
}

func (s *RoleStore) GetAll(ctx context.Context) ([]*models.Role, error) {
	list, err := s.repomanager.Roles(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	return list, nil
}

func absentAsNil(role *models.Role, err error) (*models.Role, error) {
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error searching role: %w", err)
	}
	return role, nil
}
