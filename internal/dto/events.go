package dto

import "time"

const (
	EventUserRegistered  = "user.registered"
	EventUserRoleChanged = "user.role_changed"
	EventUserDeleted     = "user.deleted"
)

// UserEvent is the payload published to the broker on user lifecycle changes.
type UserEvent struct {
	Event  string    `json:"event"`
	UserID uint      `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	RoleID uint      `json:"role_id,omitempty"`
	At     time.Time `json:"at"`
}
