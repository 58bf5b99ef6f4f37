package sdk

import (
	"fmt"
	"sort"
)

// Role is a coarse privilege tier assigned to a user.
// Roles are not ordered; privilege is decided by the permission table.
type Role string

const (
	RoleUser        Role = "user"
	RoleDomainAdmin Role = "domain_admin"
	RoleGlobalAdmin Role = "global_admin"
)

// Roles lists every known role.
var Roles = []Role{RoleUser, RoleDomainAdmin, RoleGlobalAdmin}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q (expected one of user, domain_admin, global_admin)", s)
}

// IsAdminRole reports whether role is one of the admin tiers.
func IsAdminRole(role Role) bool {
	return role == RoleDomainAdmin || role == RoleGlobalAdmin
}

// Permission is an action-on-resource capability derived from a role.
// Client-side checks against permissions gate the UI only; the server
// re-validates every call.
type Permission string

// User management
const (
	CreateUser  Permission = "CREATE_USER"
	ReadUser    Permission = "READ_USER"
	UpdateUser  Permission = "UPDATE_USER"
	DeleteUser  Permission = "DELETE_USER"
	RestoreUser Permission = "RESTORE_USER"
)

// Domain management
const (
	CreateDomain  Permission = "CREATE_DOMAIN"
	ReadDomain    Permission = "READ_DOMAIN"
	UpdateDomain  Permission = "UPDATE_DOMAIN"
	DeleteDomain  Permission = "DELETE_DOMAIN"
	RestoreDomain Permission = "RESTORE_DOMAIN"
)

// Category management
const (
	CreateCategory  Permission = "CREATE_CATEGORY"
	ReadCategory    Permission = "READ_CATEGORY"
	UpdateCategory  Permission = "UPDATE_CATEGORY"
	DeleteCategory  Permission = "DELETE_CATEGORY"
	RestoreCategory Permission = "RESTORE_CATEGORY"
)

// Asset management
const (
	CreateAsset  Permission = "CREATE_ASSET"
	ReadAsset    Permission = "READ_ASSET"
	UpdateAsset  Permission = "UPDATE_ASSET"
	DeleteAsset  Permission = "DELETE_ASSET"
	RestoreAsset Permission = "RESTORE_ASSET"
)

// Query and administration
const (
	QueryAssets  Permission = "QUERY_ASSETS"
	AdminAccess  Permission = "ADMIN_ACCESS"
	ViewDeleted  Permission = "VIEW_DELETED"
	SystemConfig Permission = "SYSTEM_CONFIG"
)

// AllPermissions lists every permission in declaration order.
var AllPermissions = []Permission{
	CreateUser, ReadUser, UpdateUser, DeleteUser, RestoreUser,
	CreateDomain, ReadDomain, UpdateDomain, DeleteDomain, RestoreDomain,
	CreateCategory, ReadCategory, UpdateCategory, DeleteCategory, RestoreCategory,
	CreateAsset, ReadAsset, UpdateAsset, DeleteAsset, RestoreAsset,
	QueryAssets, AdminAccess, ViewDeleted, SystemConfig,
}

// rolePermissions is the static role → permission table. Every permission
// is granted to at least one role.
var rolePermissions = map[Role][]Permission{
	RoleUser: {
		ReadDomain,
		ReadCategory,
		ReadAsset,
		QueryAssets,
	},
	// Domain admins manage everything inside their domains.
	RoleDomainAdmin: {
		ReadDomain, UpdateDomain,
		CreateCategory, ReadCategory, UpdateCategory, DeleteCategory,
		CreateAsset, ReadAsset, UpdateAsset, DeleteAsset,
		QueryAssets,
		ViewDeleted,
	},
	RoleGlobalAdmin: AllPermissions,
}

// ValidatePermission checks that p is a known permission.
// This prevents typos in route metadata.
func ValidatePermission(p Permission) bool {
	for _, known := range AllPermissions {
		if known == p {
			return true
		}
	}
	return false
}

// PermissionsForRole returns the permissions granted to role, sorted.
func PermissionsForRole(role Role) []Permission {
	perms := append([]Permission(nil), rolePermissions[role]...)
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}
