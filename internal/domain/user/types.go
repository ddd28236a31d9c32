package user

import (
	"errors"
	"slices"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is a named capability. Every authenticated caller implicitly holds
// RoleUser; only RoleAdmin is ever stored.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var knownRoles = []Role{RoleUser, RoleAdmin}

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return slices.Contains(knownRoles, r)
}

// NewRole is exact: "Admin" is not a role.
func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
