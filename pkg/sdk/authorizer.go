package sdk

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var casbinModelContent string

// Authorizer answers "may this role perform this action" from the static
// role → permission table. It performs no I/O and trusts that the role was
// set by a successful authentication.
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewAuthorizer builds a casbin enforcer from the embedded model and loads
// one policy line per (role, permission) pair.
func NewAuthorizer() (*Authorizer, error) {
	m, err := model.NewModelFromString(casbinModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	var rules [][]string
	for _, role := range Roles {
		for _, perm := range rolePermissions[role] {
			rules = append(rules, []string{string(role), string(perm)})
		}
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("load role policies: %w", err)
	}

	return &Authorizer{enforcer: enforcer}, nil
}

// MustNewAuthorizer is NewAuthorizer for package-level initialisation.
// The model and policies are compiled in, so failure is a programming error.
func MustNewAuthorizer() *Authorizer {
	a, err := NewAuthorizer()
	if err != nil {
		panic(err)
	}
	return a
}

// Allows reports whether role holds permission. Unknown roles, unknown
// permissions and enforcement errors all deny.
func (a *Authorizer) Allows(role Role, permission Permission) bool {
	if role == "" || permission == "" {
		return false
	}
	ok, err := a.enforcer.Enforce(string(role), string(permission))
	if err != nil {
		return false
	}
	return ok
}

// AllowsAnyRole reports whether role is one of roles. An empty list allows
// every authenticated role.
func (a *Authorizer) AllowsAnyRole(role Role, roles []Role) bool {
	if len(roles) == 0 {
		return role != ""
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Permissions lists the permissions held by role.
func (a *Authorizer) Permissions(role Role) []Permission {
	return PermissionsForRole(role)
}
