package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yangezz/paste_service/internal/domain"
	"github.com/yangezz/paste_service/internal/dto"
	"github.com/yangezz/paste_service/internal/helper"
	"github.com/yangezz/paste_service/internal/interfaces"
	"github.com/yangezz/paste_service/internal/repository"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService interface {
	Register(input dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(input dto.UserLogin) (*dto.LoginResponse, error)
	GetUserInfo(userID uint) (*dto.UserResponse, error)
	ListUsers(page, pageSize int, keyword string) (*dto.UserListResponse, error)
	ListRoles() ([]dto.RoleResponse, error)
	UpdateUserRole(userID, roleID uint) error
	DeleteUser(userID uint) error
}

type userService struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository
	auth     helper.Auth
	producer interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	roleRepo repository.RoleRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
) UserService {
	return &userService{
		repo:     repo,
		roleRepo: roleRepo,
		auth:     auth,
		producer: producer,
	}
}

func (s *userService) Register(input dto.RegisterRequest) (*dto.LoginResponse, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	password := input.Password

	if name == "" || email == "" || password == "" {
		return nil, invalidf("name, email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, invalidf("invalid email format")
	}
	if len(password) < minPasswordLength {
		return nil, invalidf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.repo.FindUserByEmail(email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindUserByName(name); err == nil {
		return nil, fmt.Errorf("name already taken: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	defaultRole, err := s.roleRepo.FindByName(domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("load default role: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Status:       true,
		RoleID:       defaultRole.ID,
	}
	if err := s.repo.CreateUser(user); err != nil {
		// The precheck races with concurrent registrations; the unique
		// index is the authority. Either the email or the name index may
		// have fired, so the message names both.
		if helper.IsUniqueViolation(err) {
			return nil, fmt.Errorf("email or name already taken: %w", ErrConflict)
		}
		return nil, err
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.publishEvent(dto.UserEvent{
		Event:  dto.EventUserRegistered,
		UserID: user.ID,
		Email:  user.Email,
		At:     time.Now(),
	})

	return &dto.LoginResponse{User: sanitizeUser(user), Token: token}, nil
}

func (s *userService) Login(input dto.UserLogin) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, invalidf("email and password are required")
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &dto.LoginResponse{User: sanitizeUser(user), Token: token}, nil
}

func (s *userService) GetUserInfo(userID uint) (*dto.UserResponse, error) {
	user, err := s.repo.FindUserByIDWithRole(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := sanitizeUser(user)
	return &resp, nil
}

func (s *userService) ListUsers(page, pageSize int, keyword string) (*dto.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	users, total, err := s.repo.ListUsers(strings.TrimSpace(keyword), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		list = append(list, sanitizeUser(&users[i]))
	}
	return &dto.UserListResponse{
		List: list,
		Pagination: dto.Pagination{
			Current:  page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

func (s *userService) ListRoles() ([]dto.RoleResponse, error) {
	roles, err := s.roleRepo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleResponse(r))
	}
	return out, nil
}

// UpdateUserRole changes a user's single role. Demoting the only
// remaining enabled admin is rejected; the check and the write share a
// transaction.
func (s *userService) UpdateUserRole(userID, roleID uint) error {
	newRole, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("role %d: %w", roleID, ErrNotFound)
		}
		return err
	}

	err = s.repo.Transaction(func(tx repository.UserRepository) error {
		user, err := tx.FindUserByIDWithRole(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrNotFound)
			}
			return err
		}

		if user.Role.IsAdmin && !newRole.IsAdmin {
			admins, err := tx.CountActiveAdmins()
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdmin
			}
		}
		return tx.UpdateUserRole(userID, roleID)
	})
	if err != nil {
		return err
	}

	s.publishEvent(dto.UserEvent{
		Event:  dto.EventUserRoleChanged,
		UserID: userID,
		RoleID: roleID,
		At:     time.Now(),
	})
	return nil
}

// DeleteUser removes a user and their pastes. Deleting the sole remaining
// enabled admin is rejected.
func (s *userService) DeleteUser(userID uint) error {
	var email string
	err := s.repo.Transaction(func(tx repository.UserRepository) error {
		user, err := tx.FindUserByIDWithRole(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrNotFound)
			}
			return err
		}
		email = user.Email

		if user.Role.IsAdmin {
			admins, err := tx.CountActiveAdmins()
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdmin
			}
		}
		return tx.DeleteUser(userID)
	})
	if err != nil {
		return err
	}

	s.publishEvent(dto.UserEvent{
		Event:  dto.EventUserDeleted,
		UserID: userID,
		Email:  email,
		At:     time.Now(),
	})
	return nil
}

// publishEvent is fire-and-forget: a broker outage never fails the request.
func (s *userService) publishEvent(event dto.UserEvent) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal %s event: %v", event.Event, err)
		return
	}
	if err := s.producer.PublishMessage([]byte(event.Event), payload); err != nil {
		log.Printf("publish %s event: %v", event.Event, err)
	}
}

func sanitizeUser(user *domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Status:    user.Status,
		RoleID:    user.RoleID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Role.ID != 0 {
		role := roleResponse(user.Role)
		resp.Role = &role
	}
	return resp
}

func roleResponse(role domain.Role) dto.RoleResponse {
	return dto.RoleResponse{
		ID:           role.ID,
		Name:         role.Name,
		Description:  role.Description,
		IsAdmin:      role.IsAdmin,
		IsSuperAdmin: role.IsSuperAdmin,
		Status:       role.Status,
	}
}
