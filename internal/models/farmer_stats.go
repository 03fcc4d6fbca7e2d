package models

import (
	"time"
)

// FarmerStats caches per-owner aggregates for the featured-farmers section.
// Recomputed periodically by jobs.FarmerStatsJob; reads never join live data.
type FarmerStats struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	OwnerEmail        string    `gorm:"size:255;uniqueIndex;not null" json:"owner_email"`
	OwnerName         string    `gorm:"size:255;not null" json:"owner_name"`
	CropsPosted       int       `gorm:"default:0" json:"crops_posted"`
	InterestsReceived int       `gorm:"default:0" json:"interests_received"`
	InterestsAccepted int       `gorm:"default:0" json:"interests_accepted"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for FarmerStats model
func (FarmerStats) TableName() string {
	return "farmer_stats"
}
