package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yangezz/paste_service/internal/domain"
)

type MenuRepository interface {
	GetMenusByRoleID(roleID uint) ([]domain.Menu, error)
	GetAllMenus() ([]domain.Menu, error)
	RoleHasPermission(roleID uint, permissionCode string) (bool, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// GetMenusByRoleID returns the visible menus granted to a role, flat,
// ordered by sort ascending.
func (r *menuRepository) GetMenusByRoleID(roleID uint) ([]domain.Menu, error) {
	var menus []domain.Menu
	err := r.db.
		Model(&domain.Menu{}).
		Joins("JOIN role_menus ON role_menus.menu_id = menus.id").
		Where("role_menus.role_id = ? AND menus.visible = ?", roleID, true).
		Order("menus.sort ASC").
		Find(&menus).Error
	if err != nil {
		return nil, fmt.Errorf("query menus for role %d: %w", roleID, err)
	}
	return menus, nil
}

func (r *menuRepository) GetAllMenus() ([]domain.Menu, error) {
	var menus []domain.Menu
	if err := r.db.Order("sort ASC").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("query all menus: %w", err)
	}
	return menus, nil
}

// RoleHasPermission reports whether any grant joins the role to a menu
// carrying the given permission code.
func (r *menuRepository) RoleHasPermission(roleID uint, permissionCode string) (bool, error) {
	var count int64
	err := r.db.
		Table("role_menus").
		Joins("JOIN menus ON menus.id = role_menus.menu_id").
		Where("role_menus.role_id = ? AND menus.permission_code = ?", roleID, permissionCode).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("query permission %q for role %d: %w", permissionCode, roleID, err)
	}
	return count > 0, nil
}
