package repository

import (
	"gorm.io/gorm"

	"github.com/yangezz/paste_service/internal/domain"
)

type RoleRepository interface {
	ListActive() ([]domain.Role, error)
	FindByID(roleID uint) (*domain.Role, error)
	FindByName(name string) (*domain.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) ListActive() ([]domain.Role, error) {
	var roles []domain.Role
	if err := r.db.Where("status = ?", true).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) FindByID(roleID uint) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.First(&role, roleID).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByName(name string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
