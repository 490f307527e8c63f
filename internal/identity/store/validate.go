package store

import (
	"fmt"

	"github.com/dmitrijs2005/gophidentity/internal/common"
	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
	validation "github.com/go-ozzo/ozzo-validation"
)

func invalidArgument(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrorInvalidArgument, name, err)
}

func requireAccount(a *models.Account) error {
	if err := validation.Validate(a, validation.NotNil); err != nil {
		return invalidArgument("account", err)
	}
	return nil
}

// validateAccountRow checks the columns that cannot be stored empty.
func validateAccountRow(a *models.Account) error {
	if err := requireAccount(a); err != nil {
		return err
	}
	err := validation.ValidateStruct(a,
		validation.Field(&a.ID, validation.Required),
		validation.Field(&a.UserName, validation.Required),
		validation.Field(&a.AccessFailedCount, validation.Min(0)),
	)
	if err != nil {
		return invalidArgument("account", err)
	}
	return nil
}

func validateClaim(c models.Claim) error {
	if err := validation.ValidateStruct(&c, validation.Field(&c.Type, validation.Required)); err != nil {
		return invalidArgument("claim", err)
	}
	return nil
}

func validateLogin(l models.ExternalLogin) error {
	err := validation.ValidateStruct(&l,
		validation.Field(&l.Provider, validation.Required),
		validation.Field(&l.ProviderKey, validation.Required),
	)
	if err != nil {
		return invalidArgument("login", err)
	}
	return nil
}

func validateRole(r *models.Role) error {
	if err := validation.Validate(r, validation.NotNil); err != nil {
		return invalidArgument("role", err)
	}
	err := validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.Required),
	)
	if err != nil {
		return invalidArgument("role", err)
	}
	return nil
}

func requireString(name, v string) error {
	if err := validation.Validate(v, validation.Required); err != nil {
		return invalidArgument(name, err)
	}
	return nil
}

// validateRoleRef accepts a role that carries at least its ID.
func validateRoleRef(r *models.Role) error {
	if err := validation.Validate(r, validation.NotNil); err != nil {
		return invalidArgument("role", err)
	}
	if err := validation.ValidateStruct(r, validation.Field(&r.ID, validation.Required)); err != nil {
		return invalidArgument("role", err)
	}
	return nil
}
