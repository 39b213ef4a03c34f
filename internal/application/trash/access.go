package trash

import (
	"slices"
	"strings"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
)

// Default role names of the business application
const (
	DefaultManagerRole = "Gerente"
	DefaultPendingRole = "Pendiente"
)

// Principal is the authenticated caller as carried by the access token
type Principal struct {
	UserID    string
	Username  string
	Roles     []string
	Superuser bool
}

// Actor returns the audit identity of the principal
func (p Principal) Actor() trash.Actor {
	return trash.Actor{ID: p.UserID, Username: p.Username}
}

// HasRole reports whether the principal belongs to role, ignoring case
func (p Principal) HasRole(role string) bool {
	return slices.ContainsFunc(p.Roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}

// AccessPolicy decides which principals may operate the trash
type AccessPolicy struct {
	managerRoles []string
	pendingRole  string
}

// NewAccessPolicy creates a policy. Empty arguments fall back to the defaults.
func NewAccessPolicy(managerRoles []string, pendingRole string) *AccessPolicy {
	roles := make([]string, 0, len(managerRoles))
	for _, r := range managerRoles {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	if len(roles) == 0 {
		roles = []string{DefaultManagerRole}
	}
	if strings.TrimSpace(pendingRole) == "" {
		pendingRole = DefaultPendingRole
	}
	return &AccessPolicy{managerRoles: roles, pendingRole: pendingRole}
}

// RequireApproved rejects anonymous principals and users still awaiting approval
func (a *AccessPolicy) RequireApproved(p Principal) error {
	if p.UserID == "" && p.Username == "" {
		return shared.ErrUnauthorized
	}
	if p.Superuser {
		return nil
	}
	if p.HasRole(a.pendingRole) {
		return shared.ErrForbidden.Withf("user %s is pending approval", p.Username)
	}
	return nil
}

// RequireManager admits superusers and members of a manager role
func (a *AccessPolicy) RequireManager(p Principal) error {
	if err := a.RequireApproved(p); err != nil {
		return err
	}
	if p.Superuser {
		return nil
	}
	for _, role := range a.managerRoles {
		if p.HasRole(role) {
			return nil
		}
	}
	return shared.ErrForbidden.Withf("user %s lacks a manager role", p.Username)
}
