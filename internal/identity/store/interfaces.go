// Package store exposes accounts and roles through narrow capability
// interfaces. The hosting authentication layer depends on the capabilities
// it needs; *AccountStore and *RoleStore implement all of them.
//
// Setters only mutate the account passed in. Nothing reaches storage until
// the caller invokes AccountWriter.Update.
package store

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophidentity/internal/identity/models"
)

// AccountReader looks accounts up. A miss yields (nil, nil).
type AccountReader interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByName(ctx context.Context, userName string) (*models.Account, error)
	GetAll(ctx context.Context) ([]*models.Account, error)
}

type AccountWriter interface {
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, account *models.Account) error
}

type ClaimStore interface {
	AddClaim(ctx context.Context, account *models.Account, claim models.Claim) error
	RemoveClaim(ctx context.Context, account *models.Account, claim models.Claim) error
	GetClaims(ctx context.Context, account *models.Account) ([]models.Claim, error)
}

type LoginStore interface {
	AddLogin(ctx context.Context, account *models.Account, login models.ExternalLogin) error
	RemoveLogin(ctx context.Context, account *models.Account, login models.ExternalLogin) error
	GetLogins(ctx context.Context, account *models.Account) ([]models.ExternalLogin, error)
	// FindByLogin returns the account owning login, or (nil, nil).
	FindByLogin(ctx context.Context, login models.ExternalLogin) (*models.Account, error)
}

type RoleMembershipStore interface {
	AddToRole(ctx context.Context, account *models.Account, roleName string) error
	RemoveFromRole(ctx context.Context, account *models.Account, roleName string) error
	GetRoles(ctx context.Context, account *models.Account) ([]string, error)
	IsInRole(ctx context.Context, account *models.Account, roleName string) (bool, error)
}

type LockoutStore interface {
	GetLockoutEnd(account *models.Account) (*time.Time, error)
	SetLockoutEnd(account *models.Account, end *time.Time) error
	GetLockoutEnabled(account *models.Account) (bool, error)
	SetLockoutEnabled(account *models.Account, enabled bool) error
	GetAccessFailedCount(account *models.Account) (int, error)
	IncrementAccessFailedCount(account *models.Account) (int, error)
	ResetAccessFailedCount(account *models.Account) error
}

type PasswordStore interface {
	GetPasswordHash(account *models.Account) (string, error)
	SetPasswordHash(account *models.Account, hash string) error
	HasPassword(account *models.Account) (bool, error)
}

type SecurityStampStore interface {
	GetSecurityStamp(account *models.Account) (string, error)
	SetSecurityStamp(account *models.Account, stamp string) error
}

type TwoFactorStore interface {
	GetTwoFactorEnabled(account *models.Account) (bool, error)
	SetTwoFactorEnabled(account *models.Account, enabled bool) error
}

type EmailStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	GetEmail(account *models.Account) (string, error)
	SetEmail(account *models.Account, email string) error
	GetEmailConfirmed(account *models.Account) (bool, error)
	SetEmailConfirmed(account *models.Account, confirmed bool) error
}

type PhoneNumberStore interface {
	GetPhoneNumber(account *models.Account) (string, error)
	SetPhoneNumber(account *models.Account, phone string) error
	GetPhoneNumberConfirmed(account *models.Account) (bool, error)
	SetPhoneNumberConfirmed(account *models.Account, confirmed bool) error
}

// AccountCapabilities is everything the account side offers.
type AccountCapabilities interface {
	AccountReader
	AccountWriter
	ClaimStore
	LoginStore
	RoleMembershipStore
	LockoutStore
	PasswordStore
	SecurityStampStore
	TwoFactorStore
	EmailStore
	PhoneNumberStore
}

// RoleReader looks roles up. A miss yields (nil, nil).
type RoleReader interface {
	FindByID(ctx context.Context, id string) (*models.Role, error)
	FindByName(ctx context.Context, name string) (*models.Role, error)
	GetAll(ctx context.Context) ([]*models.Role, error)
}

type RoleWriter interface {
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, role *models.Role) error
}

type RoleCapabilities interface {
	RoleReader
	RoleWriter
}

var (
	_ AccountCapabilities = (*AccountStore)(nil)
	_ RoleCapabilities    = (*RoleStore)(nil)
)
