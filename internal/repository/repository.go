package repository

import (
	"context"
	"time"

	"krishilink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateCrop creates a new crop listing
func (r *Repository) CreateCrop(ctx context.Context, crop *models.Crop) error {
	return r.db.WithContext(ctx).Create(crop).Error
}

// GetCropByID retrieves a crop with its interests in submission order
func (r *Repository) GetCropByID(ctx context.Context, cropID uuid.UUID) (*models.Crop, error) {
	var crop models.Crop
	err := r.db.WithContext(ctx).
		Preload("Interests", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", cropID).
		First(&crop).Error
	if err != nil {
		return nil, err
	}
	return &crop, nil
}

// ListCrops retrieves crop listings with optional type filter and name search
func (r *Repository) ListCrops(ctx context.Context, cropType, search string, limit, offset int) ([]models.Crop, error) {
	var crops []models.Crop

	query := r.db.WithContext(ctx).
		Preload("Interests", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})

	if cropType != "" {
		query = query.Where("type = ?", cropType)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+search+"%")
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&crops).Error
	if err != nil {
		return nil, err
	}
	return crops, nil
}

// ListCropsByOwner retrieves all crops posted by the given owner email
func (r *Repository) ListCropsByOwner(ctx context.Context, ownerEmail string) ([]models.Crop, error) {
	var crops []models.Crop
	err := r.db.WithContext(ctx).
		Preload("Interests", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&crops).Error
	if err != nil {
		return nil, err
	}
	return crops, nil
}

// CreateInterest persists a new interest record
func (r *Repository) CreateInterest(ctx context.Context, interest *models.Interest) error {
	return r.db.WithContext(ctx).Create(interest).Error
}

// GetInterestByID retrieves an interest by ID
func (r *Repository) GetInterestByID(ctx context.Context, interestID uuid.UUID) (*models.Interest, error) {
	var interest models.Interest
	err := r.db.WithContext(ctx).Where("id = ?", interestID).First(&interest).Error
	if err != nil {
		return nil, err
	}
	return &interest, nil
}

// UpdateInterestStatus updates only the status column of an interest
func (r *Repository) UpdateInterestStatus(ctx context.Context, interestID uuid.UUID, status models.InterestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("id = ?", interestID).
		Update("status", status).Error
}

// ListCropsWithInterestByEmail retrieves crops that have at least one interest
// from the given email, with each crop's interests narrowed to that email.
// This backs the my-interests view.
func (r *Repository) ListCropsWithInterestByEmail(ctx context.Context, email string) ([]models.Crop, error) {
	var crops []models.Crop
	err := r.db.WithContext(ctx).
		Preload("Interests", func(db *gorm.DB) *gorm.DB {
			return db.Where("user_email = ?", email).Order("created_at ASC")
		}).
		Joins("JOIN interests ON interests.crop_id = crops.id AND interests.user_email = ?", email).
		Group("crops.id").
		Order("crops.created_at DESC").
		Find(&crops).Error
	if err != nil {
		return nil, err
	}
	return crops, nil
}

// UpsertFarmerStats writes one farmer's cached aggregates
func (r *Repository) UpsertFarmerStats(ctx context.Context, stats *models.FarmerStats) error {
	stats.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_email"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"owner_name", "crops_posted", "interests_received", "interests_accepted", "updated_at",
			}),
		}).
		Create(stats).Error
}

// TopFarmers retrieves the highest-ranked farmers by accepted interests
func (r *Repository) TopFarmers(ctx context.Context, limit int) ([]models.FarmerStats, error) {
	var stats []models.FarmerStats
	err := r.db.WithContext(ctx).
		Order("interests_accepted DESC, interests_received DESC, crops_posted DESC").
		Limit(limit).
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
