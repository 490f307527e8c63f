package models

import "github.com/google/uuid"

// Role is a named permission group. Name uniqueness is enforced by the
// Roles table.
type Role struct {
	ID   string
	Name string
}

// NewRole returns a role with a generated ID.
func NewRole(name string) *Role {
	return &Role{ID: uuid.NewString(), Name: name}
}

// NewRoleWithID returns a role that keeps the caller supplied ID.
func NewRoleWithID(name, id string) *Role {
	return &Role{ID: id, Name: name}
}

// RoleMembership links an account to a role. Existence of the pair is the
// membership; it carries no other attributes.
type RoleMembership struct {
	AccountID string
	RoleID    string
}
