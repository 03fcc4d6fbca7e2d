package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"krishilink/internal/models"
	"krishilink/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCropNameRequired = errors.New("crop name is required")
	ErrCropTypeRequired = errors.New("crop type is required")
	ErrNegativePrice    = errors.New("price per unit cannot be negative")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

// CreateCropInput carries the posting form fields
type CreateCropInput struct {
	Name         string
	Type         string
	PricePerUnit decimal.Decimal
	Unit         string
	Quantity     float64
	Description  string
	Location     string
	Image        string
}

// CropService handles crop listing business logic
type CropService struct {
	repo *repository.Repository
}

// NewCropService creates a new CropService
func NewCropService(repo *repository.Repository) *CropService {
	return &CropService{repo: repo}
}

// CreateCrop posts a new listing owned by the actor. The owner snapshot is
// taken from the actor's identity and never changes afterwards.
func (s *CropService) CreateCrop(ctx context.Context, actor Actor, input CreateCropInput) (*models.Crop, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrCropNameRequired
	}
	if strings.TrimSpace(input.Type) == "" {
		return nil, ErrCropTypeRequired
	}
	if input.PricePerUnit.IsNegative() {
		return nil, ErrNegativePrice
	}
	if input.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	crop := &models.Crop{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Type:         input.Type,
		PricePerUnit: input.PricePerUnit,
		Unit:         input.Unit,
		Quantity:     input.Quantity,
		Description:  input.Description,
		Location:     input.Location,
		OwnerEmail:   actor.Email,
		OwnerName:    actor.DisplayName,
		CreatedAt:    time.Now(),
	}
	if input.Image != "" {
		crop.Image = &input.Image
	}

	if err := s.repo.CreateCrop(ctx, crop); err != nil {
		return nil, fmt.Errorf("failed to create crop: %w", err)
	}

	return crop, nil
}

// GetCrop retrieves one crop with its interests
func (s *CropService) GetCrop(ctx context.Context, cropID uuid.UUID) (*models.Crop, error) {
	crop, err := s.repo.GetCropByID(ctx, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to load crop: %w", err)
	}
	return crop, nil
}

// ListCrops retrieves listings, optionally filtered by type and a
// case-insensitive name search
func (s *CropService) ListCrops(ctx context.Context, cropType, search string, limit, offset int) ([]models.Crop, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	crops, err := s.repo.ListCrops(ctx, cropType, strings.ToLower(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return crops, nil
}

// ListMyPosts retrieves the actor's own listings
func (s *CropService) ListMyPosts(ctx context.Context, actor Actor) ([]models.Crop, error) {
	crops, err := s.repo.ListCropsByOwner(ctx, actor.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return crops, nil
}
