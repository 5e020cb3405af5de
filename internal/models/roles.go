package models

// Role is the enumerated role tag stored on an account row.
type Role string

const (
	RoleMember    Role = "member"
	RoleBanned    Role = "banned"
	RoleModerator Role = "moderator"
	RoleManager   Role = "manager"
)

// Permission names an action a role level is allowed to perform.
type Permission string

const (
	PermissionBanUsers     Permission = "ban_users"
	PermissionEditRoles    Permission = "edit_roles"
	PermissionManageFollow Permission = "manage_follows"
)

// RoleLevel describes the privilege tier a role resolves to.
// Elevation 0 is the ordinary, unprivileged tier.
type RoleLevel struct {
	Name        Role         `json:"name"`
	Elevation   int          `json:"elevation"`
	Permissions []Permission `json:"permissions"`
}

// HasPermission reports whether the level carries the given permission.
func (l RoleLevel) HasPermission(target Permission) bool {
	for _, p := range l.Permissions {
		if p == target {
			return true
		}
	}
	return false
}

// AllRoles returns the roles known to the service.
func AllRoles() []Role {
	return []Role{
		RoleMember,
		RoleBanned,
		RoleModerator,
		RoleManager,
	}
}
