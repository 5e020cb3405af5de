package service

import "social-server/internal/models"

// RoleRegistry resolves role names to privilege levels. Read-only; the level
// table is fixed at construction.
type RoleRegistry struct {
	levels map[models.Role]models.RoleLevel
}

// NewRoleRegistry builds the registry with the default level table.
func NewRoleRegistry() *RoleRegistry {
	return &RoleRegistry{
		levels: map[models.Role]models.RoleLevel{
			models.RoleMember: {
				Name:        models.RoleMember,
				Elevation:   0,
				Permissions: []models.Permission{},
			},
			models.RoleBanned: {
				Name:        models.RoleBanned,
				Elevation:   0,
				Permissions: []models.Permission{},
			},
			models.RoleModerator: {
				Name:      models.RoleModerator,
				Elevation: 1,
				Permissions: []models.Permission{
					models.PermissionBanUsers,
					models.PermissionManageFollow,
				},
			},
			models.RoleManager: {
				Name:      models.RoleManager,
				Elevation: 2,
				Permissions: []models.Permission{
					models.PermissionBanUsers,
					models.PermissionManageFollow,
					models.PermissionEditRoles,
				},
			},
		},
	}
}

// LevelFor resolves a role to its level. Total: unknown role names resolve to
// the unprivileged member tier.
func (r *RoleRegistry) LevelFor(role models.Role) models.RoleLevel {
	if level, ok := r.levels[role]; ok {
		return level
	}
	return models.RoleLevel{
		Name:        role,
		Elevation:   0,
		Permissions: []models.Permission{},
	}
}
