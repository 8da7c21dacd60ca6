package dto

import "time"

// UserResponse is a user with sensitive fields stripped.
type UserResponse struct {
	ID        uint          `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Status    bool          `json:"status"`
	RoleID    uint          `json:"role_id"`
	Role      *RoleResponse `json:"role,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type RoleResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsAdmin      bool   `json:"isAdmin"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
	Status       bool   `json:"status"`
}

type Pagination struct {
	Current  int   `json:"current"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

type UserListResponse struct {
	List       []UserResponse `json:"list"`
	Pagination Pagination     `json:"pagination"`
}

type UpdateRoleRequest struct {
	UserID uint `json:"userId"`
	RoleID uint `json:"roleId"`
}

type DeleteUserRequest struct {
	ID uint `json:"id"`
}
