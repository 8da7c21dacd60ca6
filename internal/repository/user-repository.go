package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yangezz/paste_service/internal/domain"
)

type UserRepository interface {
	CreateUser(user *domain.User) error
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByName(name string) (*domain.User, error)
	FindUserByID(userID uint) (*domain.User, error)
	FindUserByIDWithRole(userID uint) (*domain.User, error)
	ListUsers(keyword string, limit, offset int) ([]domain.User, int64, error)
	UpdateUserRole(userID, roleID uint) error
	DeleteUser(userID uint) error
	CountActiveAdmins() (int64, error)
	Transaction(fn func(UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	return r.db.Create(user).Error
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByName(name string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByID(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByIDWithRole(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.Preload("Role").First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ListUsers(keyword string, limit, offset int) ([]domain.User, int64, error) {
	var users []domain.User
	var total int64

	q := r.db.Model(&domain.User{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	if err := q.Preload("Role").Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (r *userRepository) UpdateUserRole(userID, roleID uint) error {
	return r.db.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID).Error
}

func (r *userRepository) DeleteUser(userID uint) error {
	// Pastes carry an ON DELETE CASCADE constraint; the explicit delete
	// keeps stores without enforced foreign keys consistent too.
	if err := r.db.Where("creator_id = ?", userID).Delete(&domain.Paste{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.User{}, userID).Error
}

// CountActiveAdmins counts enabled users whose role carries the admin flag.
func (r *userRepository) CountActiveAdmins() (int64, error) {
	var count int64
	err := r.db.
		Table("users").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.is_admin = ? AND users.status = ?", true, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Transaction runs fn against a tx-bound repository. The last-admin guard
// relies on check and mutation sharing one transaction.
func (r *userRepository) Transaction(fn func(UserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx})
	})
}
