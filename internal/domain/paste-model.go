package domain

import "time"

const (
	PasteTypeText  = "text"
	PasteTypeImage = "image"
)

type Paste struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	ContentType string    `gorm:"type:varchar(10);not null;default:text" json:"contentType"`
	CreatorID   uint      `gorm:"index;not null" json:"creator_id"`
	Creator     *User     `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	IsPublic    bool      `gorm:"not null" json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
