// Package models defines the identity records persisted by the repositories:
// accounts with their owned claims, external logins and role names, plus
// roles and the account-role join.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a user identity together with the collections it owns. The
// collections are loaded and saved as a unit keyed by ID.
type Account struct {
	// ID is generated once by NewAccount and never changes afterwards.
	ID       string
	UserName string

	Email          string
	EmailConfirmed bool

	// PasswordHash is an already computed hash; it is stored as given.
	PasswordHash string
	// SecurityStamp changes whenever credentials change.
	SecurityStamp string

	PhoneNumber          string
	PhoneNumberConfirmed bool

	TwoFactorEnabled bool

	// LockoutEnd is nil when no lockout was ever set. A value in the past
	// means the account is not locked out.
	LockoutEnd        *time.Time
	LockoutEnabled    bool
	AccessFailedCount int

	Claims []Claim
	Logins []ExternalLogin
	Roles  []string
}

// NewAccount returns an account with a fresh ID and empty collections.
func NewAccount(userName string) *Account {
	return &Account{
		ID:       uuid.NewString(),
		UserName: userName,
		Claims:   []Claim{},
		Logins:   []ExternalLogin{},
		Roles:    []string{},
	}
}

// IsLockedOut reports whether the lockout end lies after now.
func (a *Account) IsLockedOut(now time.Time) bool {
	return a.LockoutEnd != nil && a.LockoutEnd.After(now)
}
