package services

import (
	"context"
	"fmt"

	"krishilink/internal/models"
	"krishilink/internal/repository"

	"gorm.io/gorm"
)

// FarmerStatsService maintains the cached per-farmer aggregates behind the
// featured-farmers section
type FarmerStatsService struct {
	db   *gorm.DB
	repo *repository.Repository
}

// NewFarmerStatsService creates a new FarmerStatsService
func NewFarmerStatsService(db *gorm.DB, repo *repository.Repository) *FarmerStatsService {
	return &FarmerStatsService{db: db, repo: repo}
}

// RecomputeAll rebuilds the stats cache from crops and interests
func (s *FarmerStatsService) RecomputeAll(ctx context.Context) error {
	type row struct {
		OwnerEmail        string
		OwnerName         string
		CropsPosted       int
		InterestsReceived int
		InterestsAccepted int
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Model(&models.Crop{}).
		Select(`crops.owner_email,
			MAX(crops.owner_name) AS owner_name,
			COUNT(DISTINCT crops.id) AS crops_posted,
			COUNT(interests.id) AS interests_received,
			COUNT(CASE WHEN interests.status = ? THEN 1 END) AS interests_accepted`,
			models.InterestStatusAccepted).
		Joins("LEFT JOIN interests ON interests.crop_id = crops.id").
		Group("crops.owner_email").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate farmer stats: %w", err)
	}

	for _, r := range rows {
		stats := &models.FarmerStats{
			OwnerEmail:        r.OwnerEmail,
			OwnerName:         r.OwnerName,
			CropsPosted:       r.CropsPosted,
			InterestsReceived: r.InterestsReceived,
			InterestsAccepted: r.InterestsAccepted,
		}
		if err := s.repo.UpsertFarmerStats(ctx, stats); err != nil {
			return fmt.Errorf("failed to upsert stats for %s: %w", r.OwnerEmail, err)
		}
	}

	return nil
}

// TopFarmers returns the highest-ranked farmers from the cache
func (s *FarmerStatsService) TopFarmers(ctx context.Context, limit int) ([]models.FarmerStats, error) {
	if limit <= 0 || limit > 50 {
		limit = 3
	}
	return s.repo.TopFarmers(ctx, limit)
}
