package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Crop types shown in the posting form. Type is stored as free text so
// listings imported from elsewhere keep whatever label they came with.
const (
	CropTypeVegetable = "Vegetable"
	CropTypeFruit     = "Fruit"
	CropTypeGrain     = "Grain"
	CropTypeOther     = "Other"
)

// Crop represents a listing a farmer posts for sale.
// OwnerEmail/OwnerName are snapshotted at creation and never updated.
type Crop struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string          `gorm:"size:255;not null;index" json:"name"`
	Type         string          `gorm:"size:50;not null;index" json:"type"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price_per_unit"`
	Unit         string          `gorm:"size:50;not null" json:"unit"`
	Quantity     float64         `gorm:"default:0" json:"quantity"`
	Description  string          `gorm:"type:text" json:"description"`
	Location     string          `gorm:"size:255" json:"location"`
	Image        *string         `gorm:"size:500" json:"image,omitempty"`
	OwnerEmail   string          `gorm:"size:255;not null;index" json:"owner_email"`
	OwnerName    string          `gorm:"size:255;not null" json:"owner_name"`
	Interests    []Interest      `gorm:"foreignKey:CropID" json:"interests,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName specifies the table name for Crop model
func (Crop) TableName() string {
	return "crops"
}
