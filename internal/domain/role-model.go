package domain

import "time"

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

type Role struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"type:varchar(100)" json:"description"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	IsSuperAdmin bool      `gorm:"not null;default:false" json:"isSuperAdmin"`
	Status       bool      `gorm:"not null" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleMenu grants a role visibility into a menu. Duplicate grants are
// tolerated; the natural key is not enforced at the schema level.
type RoleMenu struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoleID    uint      `gorm:"index;not null" json:"role_id"`
	MenuID    uint      `gorm:"index;not null" json:"menu_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
