package domain

import "time"

// Menu is a navigable UI node. ParentID points at another Menu's ID,
// 0 marks a root node.
type Menu struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(50);not null" json:"name"`
	Path           string    `gorm:"type:varchar(100)" json:"path"`
	Component      string    `gorm:"type:varchar(100)" json:"component"`
	Icon           string    `gorm:"type:varchar(50)" json:"icon"`
	ParentID       uint      `gorm:"index;not null;default:0" json:"parent_id"`
	Sort           int       `gorm:"not null;default:0" json:"sort"`
	Visible        bool      `gorm:"not null" json:"visible"`
	PermissionCode string    `gorm:"type:varchar(50)" json:"permission_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
