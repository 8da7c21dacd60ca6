package dto

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the identity bound into a verified token.
type AuthResponse struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// AuthUser is the authenticated caller attached to the request context
// after the auth middleware has loaded the user and its role.
type AuthUser struct {
	ID           uint
	Status       bool
	RoleID       uint
	IsAdmin      bool
	IsSuperAdmin bool
}

type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
