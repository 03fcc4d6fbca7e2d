package models

import (
	"time"

	"github.com/google/uuid"
)

type InterestStatus string

const (
	InterestStatusPending  InterestStatus = "pending"
	InterestStatusAccepted InterestStatus = "accepted"
	InterestStatusRejected InterestStatus = "rejected"
)

// Terminal reports whether the status admits no further transition.
// pending may move to accepted or rejected; both of those are final.
func (s InterestStatus) Terminal() bool {
	return s == InterestStatusAccepted || s == InterestStatusRejected
}

// Valid reports whether s is one of the three known statuses.
func (s InterestStatus) Valid() bool {
	return s == InterestStatusPending || s.Terminal()
}

// Interest represents a buyer's offer against one crop. At most one interest
// per (crop, buyer email) pair may exist, regardless of status.
type Interest struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CropID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_interests_crop_email" json:"crop_id"`
	UserEmail string         `gorm:"size:255;not null;uniqueIndex:idx_interests_crop_email" json:"user_email"`
	UserName  string         `gorm:"size:255;not null" json:"user_name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Message   string         `gorm:"type:text" json:"message"`
	Status    InterestStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Interest model
func (Interest) TableName() string {
	return "interests"
}
