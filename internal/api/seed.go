package api

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yangezz/paste_service/internal/domain"
)

// Seed installs the base roles, menus and grants on an empty database.
// It is idempotent: existing rows are left alone.
func Seed(db *gorm.DB) error {
	roles, err := seedRoles(db)
	if err != nil {
		return err
	}
	menus, err := seedMenus(db)
	if err != nil {
		return err
	}
	return seedGrants(db, roles, menus)
}

func seedRoles(db *gorm.DB) (map[string]domain.Role, error) {
	wanted := []domain.Role{
		{Name: domain.RoleUser, Description: "Regular user with basic access", Status: true},
		{Name: domain.RoleAdmin, Description: "Administrator with most management functions", IsAdmin: true, Status: true},
		{Name: domain.RoleSuperAdmin, Description: "Super administrator with full access", IsAdmin: true, IsSuperAdmin: true, Status: true},
	}

	out := make(map[string]domain.Role, len(wanted))
	for _, want := range wanted {
		var role domain.Role
		err := db.Where("name = ?", want.Name).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = want
			if err := db.Create(&role).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		out[role.Name] = role
	}
	return out, nil
}

func seedMenus(db *gorm.DB) ([]domain.Menu, error) {
	var count int64
	if err := db.Model(&domain.Menu{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		var menus []domain.Menu
		err := db.Order("sort ASC").Find(&menus).Error
		return menus, err
	}

	menus := []domain.Menu{
		{Name: "Dashboard", Path: "/dashboard", Component: "Dashboard", Icon: "dashboard", Sort: 1, Visible: true, PermissionCode: "dashboard"},
		{Name: "Users", Path: "/users", Component: "UserManagement", Icon: "user", Sort: 2, Visible: true, PermissionCode: "user:view"},
		{Name: "Roles", Path: "/roles", Component: "RoleManagement", Icon: "team", Sort: 3, Visible: true, PermissionCode: "role:view"},
		{Name: "Menus", Path: "/menus", Component: "MenuManagement", Icon: "menu", Sort: 4, Visible: true, PermissionCode: "menu:view"},
		{Name: "Settings", Path: "/settings", Component: "Settings", Icon: "setting", Sort: 5, Visible: true, PermissionCode: "setting:view"},
	}
	for i := range menus {
		if err := db.Create(&menus[i]).Error; err != nil {
			return nil, err
		}
	}
	return menus, nil
}

// seedGrants wires the default visibility: regular users see the
// dashboard, admins everything but menu management, super-admins all.
func seedGrants(db *gorm.DB, roles map[string]domain.Role, menus []domain.Menu) error {
	var count int64
	if err := db.Model(&domain.RoleMenu{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(menus) == 0 {
		return nil
	}

	grant := func(role domain.Role, menus []domain.Menu) error {
		for _, m := range menus {
			if err := db.Create(&domain.RoleMenu{RoleID: role.ID, MenuID: m.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	}

	if err := grant(roles[domain.RoleUser], menus[:1]); err != nil {
		return err
	}
	adminMenus := menus
	if len(menus) >= 4 {
		adminMenus = menus[:4]
	}
	if err := grant(roles[domain.RoleAdmin], adminMenus); err != nil {
		return err
	}
	return grant(roles[domain.RoleSuperAdmin], menus)
}
