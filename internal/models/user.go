package models

import (
	"time"
)

// User represents a registered account. Farmer vs. buyer is not a property
// of the account — ownership is decided per crop.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName  string    `gorm:"size:255;not null" json:"display_name"`
	PhotoURL     *string   `gorm:"size:500" json:"photo_url,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
