package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"krishilink/internal/models"
	"krishilink/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Actor identifies who is performing an operation. Identity is passed in
// explicitly on every call rather than read from shared state, so the same
// service instance serves any caller.
type Actor struct {
	Email       string
	DisplayName string
}

// Role is the actor's relationship to a specific crop
type Role string

const (
	RoleOwner Role = "owner"
	RoleBuyer Role = "buyer"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidDecision   = errors.New("decision must be accepted or rejected")
	ErrDuplicateInterest = errors.New("an interest for this crop already exists from this buyer")
	ErrOwnCrop           = errors.New("cannot send interest on your own crop")
	ErrNotOwner          = errors.New("only the crop owner can resolve interests")
	ErrAlreadyResolved   = errors.New("interest is no longer pending")
	ErrCropNotFound      = errors.New("crop not found")
	ErrInterestNotFound  = errors.New("interest not found")
)

// InterestService drives the interest negotiation workflow: submission by
// buyers, accept/reject by the crop owner. Per-interest state machine:
// pending -> accepted | rejected, both terminal.
type InterestService struct {
	repo *repository.Repository
}

// NewInterestService creates a new InterestService
func NewInterestService(repo *repository.Repository) *InterestService {
	return &InterestService{repo: repo}
}

// ViewAs returns the actor's role for the given crop. A nil actor is a
// buyer; mutating operations additionally require authentication, which is
// enforced at the handler layer.
func ViewAs(actor *Actor, crop *models.Crop) Role {
	if actor != nil && actor.Email == crop.OwnerEmail {
		return RoleOwner
	}
	return RoleBuyer
}

// CanSubmitInterest reports whether the given email may submit a new
// interest on the crop: the email must not belong to the owner and must not
// already appear in the crop's interests, whatever their status.
func CanSubmitInterest(crop *models.Crop, interests []models.Interest, email string) bool {
	if email == crop.OwnerEmail {
		return false
	}
	for _, i := range interests {
		if i.UserEmail == email {
			return false
		}
	}
	return true
}

// ComputeTotal returns quantity * price-per-unit for the crop. Derived on
// demand, never persisted.
func ComputeTotal(crop *models.Crop, quantity int) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(crop.PricePerUnit)
}

// SubmitInterest creates a pending interest on the crop for the actor.
// Validation happens before any write; nothing is persisted on failure.
func (s *InterestService) SubmitInterest(
	ctx context.Context,
	cropID uuid.UUID,
	actor Actor,
	quantity int,
	message string,
) (*models.Interest, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	crop, err := s.repo.GetCropByID(ctx, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to load crop: %w", err)
	}

	if ViewAs(&actor, crop) == RoleOwner {
		return nil, ErrOwnCrop
	}
	if !CanSubmitInterest(crop, crop.Interests, actor.Email) {
		return nil, ErrDuplicateInterest
	}

	interest := &models.Interest{
		ID:        uuid.New(),
		CropID:    crop.ID,
		UserEmail: actor.Email,
		UserName:  actor.DisplayName,
		Quantity:  quantity,
		Message:   message,
		Status:    models.InterestStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateInterest(ctx, interest); err != nil {
		return nil, fmt.Errorf("failed to create interest: %w", err)
	}

	return interest, nil
}

// ResolveInterest applies the owner's accept/reject decision to a pending
// interest. Only the status field changes, and only after the update is
// persisted.
func (s *InterestService) ResolveInterest(
	ctx context.Context,
	cropID uuid.UUID,
	interestID uuid.UUID,
	decision models.InterestStatus,
	actor Actor,
) (*models.Interest, error) {
	if !decision.Terminal() {
		return nil, ErrInvalidDecision
	}

	crop, err := s.repo.GetCropByID(ctx, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to load crop: %w", err)
	}

	if ViewAs(&actor, crop) != RoleOwner {
		return nil, ErrNotOwner
	}

	interest, err := s.repo.GetInterestByID(ctx, interestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterestNotFound
		}
		return nil, fmt.Errorf("failed to load interest: %w", err)
	}
	if interest.CropID != crop.ID {
		return nil, ErrInterestNotFound
	}

	if interest.Status != models.InterestStatusPending {
		return nil, ErrAlreadyResolved
	}

	if err := s.repo.UpdateInterestStatus(ctx, interest.ID, decision); err != nil {
		return nil, fmt.Errorf("failed to update interest status: %w", err)
	}

	interest.Status = decision
	return interest, nil
}

// ListMyInterests returns crops carrying the actor's interests, each crop's
// interest list narrowed to the actor's own records.
func (s *InterestService) ListMyInterests(ctx context.Context, actor Actor) ([]models.Crop, error) {
	crops, err := s.repo.ListCropsWithInterestByEmail(ctx, actor.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	return crops, nil
}
