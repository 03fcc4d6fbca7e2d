package jobs

import (
	"context"
	"log"
	"time"

	"krishilink/internal/repository"
	"krishilink/internal/services"

	"gorm.io/gorm"
)

// FarmerStatsJob periodically rebuilds the featured-farmers cache
type FarmerStatsJob struct {
	service *services.FarmerStatsService
}

func NewFarmerStatsJob(db *gorm.DB, repo *repository.Repository) *FarmerStatsJob {
	return &FarmerStatsJob{
		service: services.NewFarmerStatsService(db, repo),
	}
}

// Start begins the periodic recompute job
func (j *FarmerStatsJob) Start(interval time.Duration) {
	go func() {
		// Run immediately on start
		ctx := context.Background()
		if err := j.service.RecomputeAll(ctx); err != nil {
			log.Printf("Initial farmer stats recompute error: %v", err)
		}

		// Then run periodically
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if err := j.service.RecomputeAll(ctx); err != nil {
				log.Printf("Farmer stats recompute error: %v", err)
			}
		}
	}()
}
