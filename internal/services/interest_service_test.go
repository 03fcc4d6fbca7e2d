package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"krishilink/internal/models"
	"krishilink/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Named shared-cache memory DB so every connection in the pool sees the
	// same database; the name is per-test so tests stay isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Crop{},
		&models.Interest{},
		&models.FarmerStats{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestCrop(t *testing.T, db *gorm.DB, ownerEmail, ownerName string, price int64) *models.Crop {
	crop := &models.Crop{
		ID:           uuid.New(),
		Name:         "Rice",
		Type:         models.CropTypeGrain,
		PricePerUnit: decimal.NewFromInt(price),
		Unit:         "kg",
		Quantity:     100,
		Location:     "Dinajpur",
		OwnerEmail:   ownerEmail,
		OwnerName:    ownerName,
	}
	if err := db.Create(crop).Error; err != nil {
		t.Fatalf("failed to create test crop: %v", err)
	}
	return crop
}

func TestComputeTotal(t *testing.T) {
	crop := &models.Crop{PricePerUnit: decimal.NewFromInt(50)}

	for q := 0; q <= 20; q++ {
		want := decimal.NewFromInt(int64(q * 50))
		got := ComputeTotal(crop, q)
		if !got.Equal(want) {
			t.Errorf("ComputeTotal(q=%d): expected %s, got %s", q, want, got)
		}
	}

	// Fractional price
	crop = &models.Crop{PricePerUnit: decimal.RequireFromString("12.50")}
	if got := ComputeTotal(crop, 3); !got.Equal(decimal.RequireFromString("37.50")) {
		t.Errorf("expected 37.50, got %s", got)
	}
}

func TestViewAs(t *testing.T) {
	crop := &models.Crop{OwnerEmail: "f@x.com"}

	if role := ViewAs(&Actor{Email: "f@x.com"}, crop); role != RoleOwner {
		t.Errorf("expected owner role, got %s", role)
	}
	if role := ViewAs(&Actor{Email: "b@x.com"}, crop); role != RoleBuyer {
		t.Errorf("expected buyer role, got %s", role)
	}
	// Unauthenticated user is a buyer
	if role := ViewAs(nil, crop); role != RoleBuyer {
		t.Errorf("expected buyer role for nil actor, got %s", role)
	}
}

func TestCanSubmitInterest(t *testing.T) {
	crop := &models.Crop{OwnerEmail: "f@x.com"}
	interests := []models.Interest{
		{UserEmail: "b@x.com", Status: models.InterestStatusRejected},
	}

	if CanSubmitInterest(crop, interests, "f@x.com") {
		t.Error("owner should not be able to submit interest")
	}
	// A prior interest blocks resubmission regardless of its status
	if CanSubmitInterest(crop, interests, "b@x.com") {
		t.Error("buyer with existing interest should not be able to submit again")
	}
	if !CanSubmitInterest(crop, interests, "c@x.com") {
		t.Error("fresh buyer should be able to submit")
	}
}

func TestSubmitInterestQuantityValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	crop := createTestCrop(t, db, "f@x.com", "Farmer", 50)
	ctx := context.Background()

	for _, q := range []int{0, -1, -100} {
		_, err := service.SubmitInterest(ctx, crop.ID, Actor{Email: "b@x.com", DisplayName: "Buyer"}, q, "hi")
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", q, err)
		}
	}

	// Nothing was written
	var count int64
	db.Model(&models.Interest{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no interests persisted, got %d", count)
	}
}

func TestSubmitInterestScenario(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	crop := createTestCrop(t, db, "f@x.com", "Farmer", 50)
	ctx := context.Background()
	buyer := Actor{Email: "b@x.com", DisplayName: "Buyer"}

	interest, err := service.SubmitInterest(ctx, crop.ID, buyer, 3, "interested")
	if err != nil {
		t.Fatalf("SubmitInterest failed: %v", err)
	}
	if interest.Status != models.InterestStatusPending {
		t.Errorf("expected pending status, got %s", interest.Status)
	}
	if interest.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", interest.Quantity)
	}
	if interest.ID == uuid.Nil {
		t.Error("expected an assigned interest id")
	}

	reloaded, err := service.repo.GetCropByID(ctx, crop.ID)
	if err != nil {
		t.Fatalf("failed to reload crop: %v", err)
	}
	if total := ComputeTotal(reloaded, interest.Quantity); !total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected total 150, got %s", total)
	}

	// Second submission from the same buyer is rejected
	_, err = service.SubmitInterest(ctx, crop.ID, buyer, 1, "again")
	if !errors.Is(err, ErrDuplicateInterest) {
		t.Errorf("expected ErrDuplicateInterest, got %v", err)
	}

	var count int64
	db.Model(&models.Interest{}).Where("crop_id = ?", crop.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one interest, got %d", count)
	}
}

func TestSubmitInterestOwnCrop(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	crop := createTestCrop(t, db, "f@x.com", "Farmer", 50)

	_, err := service.SubmitInterest(context.Background(), crop.ID, Actor{Email: "f@x.com", DisplayName: "Farmer"}, 2, "mine")
	if !errors.Is(err, ErrOwnCrop) {
		t.Errorf("expected ErrOwnCrop, got %v", err)
	}
}

func TestSubmitInterestCropNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))

	_, err := service.SubmitInterest(context.Background(), uuid.New(), Actor{Email: "b@x.com"}, 1, "")
	if !errors.Is(err, ErrCropNotFound) {
		t.Errorf("expected ErrCropNotFound, got %v", err)
	}
}

func TestResolveInterestAcceptThenTerminal(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	crop := createTestCrop(t, db, "f@x.com", "Farmer", 50)
	ctx := context.Background()
	owner := Actor{Email: "f@x.com", DisplayName: "Farmer"}

	interest, err := service.SubmitInterest(ctx, crop.ID, Actor{Email: "b@x.com", DisplayName: "Buyer"}, 3, "interested")
	if err != nil {
		t.Fatalf("SubmitInterest failed: %v", err)
	}

	resolved, err := service.ResolveInterest(ctx, crop.ID, interest.ID, models.InterestStatusAccepted, owner)
	if err != nil {
		t.Fatalf("ResolveInterest failed: %v", err)
	}
	if resolved.Status != models.InterestStatusAccepted {
		t.Errorf("expected accepted, got %s", resolved.Status)
	}

	// Only the status column changed
	stored, err := service.repo.GetInterestByID(ctx, interest.ID)
	if err != nil {
		t.Fatalf("failed to reload interest: %v", err)
	}
	if stored.Status != models.InterestStatusAccepted {
		t.Errorf("expected stored status accepted, got %s", stored.Status)
	}
	if stored.Quantity != 3 || stored.UserEmail != "b@x.com" || stored.Message != "interested" {
		t.Errorf("unexpected field mutation: %+v", stored)
	}

	// Accepted is terminal: a follow-up rejection must fail
	_, err = service.ResolveInterest(ctx, crop.ID, interest.ID, models.InterestStatusRejected, owner)
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("expected ErrAlreadyResolved, got %v", err)
	}
	stored, _ = service.repo.GetInterestByID(ctx, interest.ID)
	if stored.Status != models.InterestStatusAccepted {
		t.Errorf("status changed after failed transition: %s", stored.Status)
	}
}

func TestResolveInterestReject(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	crop := createTestCrop(t, db, "f@x.com", "Farmer", 50)
	ctx := context.Background()

	interest, err := service.SubmitInterest(ctx, crop.ID, Actor{Email: "b@x.com", DisplayName: "Buyer"}, 2, "")
	if err != nil {
		t.Fatalf("SubmitInterest failed: %v", err)
	}

	resolved, err := service.ResolveInterest(ctx, crop.ID, interest.ID, models.InterestStatusRejected, Actor{Email: "f@x.com"})
	if err != nil {
		t.Fatalf("ResolveInterest failed: %v", err)
	}
	if resolved.Status != models.InterestStatusRejected {
		t.Errorf("expected rejected, got %s", resolved.Status)
	}

	// Rejected is terminal too
	_, err = service.ResolveInterest(ctx, crop.ID, interest.ID, models.InterestStatusAccepted, Actor{Email: "f@x.com"})
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestResolveInterestUnauthorized(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	crop := createTestCrop(t, db, "f@x.com", "Farmer", 50)
	ctx := context.Background()

	interest, err := service.SubmitInterest(ctx, crop.ID, Actor{Email: "b@x.com", DisplayName: "Buyer"}, 1, "")
	if err != nil {
		t.Fatalf("SubmitInterest failed: %v", err)
	}

	// Neither a stranger nor the buyer themselves may resolve
	for _, email := range []string{"x@y.com", "b@x.com"} {
		_, err = service.ResolveInterest(ctx, crop.ID, interest.ID, models.InterestStatusAccepted, Actor{Email: email})
		if !errors.Is(err, ErrNotOwner) {
			t.Errorf("actor %s: expected ErrNotOwner, got %v", email, err)
		}
	}

	stored, _ := service.repo.GetInterestByID(ctx, interest.ID)
	if stored.Status != models.InterestStatusPending {
		t.Errorf("status changed after unauthorized attempts: %s", stored.Status)
	}
}

func TestResolveInterestInvalidDecision(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	crop := createTestCrop(t, db, "f@x.com", "Farmer", 50)
	ctx := context.Background()

	interest, err := service.SubmitInterest(ctx, crop.ID, Actor{Email: "b@x.com", DisplayName: "Buyer"}, 1, "")
	if err != nil {
		t.Fatalf("SubmitInterest failed: %v", err)
	}

	for _, decision := range []models.InterestStatus{models.InterestStatusPending, "approved", ""} {
		_, err = service.ResolveInterest(ctx, crop.ID, interest.ID, decision, Actor{Email: "f@x.com"})
		if !errors.Is(err, ErrInvalidDecision) {
			t.Errorf("decision %q: expected ErrInvalidDecision, got %v", decision, err)
		}
	}
}

func TestResolveInterestWrongCrop(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	cropA := createTestCrop(t, db, "f@x.com", "Farmer", 50)
	cropB := createTestCrop(t, db, "f@x.com", "Farmer", 60)
	ctx := context.Background()

	interest, err := service.SubmitInterest(ctx, cropA.ID, Actor{Email: "b@x.com", DisplayName: "Buyer"}, 1, "")
	if err != nil {
		t.Fatalf("SubmitInterest failed: %v", err)
	}

	// The interest belongs to cropA; addressing it through cropB must fail
	_, err = service.ResolveInterest(ctx, cropB.ID, interest.ID, models.InterestStatusAccepted, Actor{Email: "f@x.com"})
	if !errors.Is(err, ErrInterestNotFound) {
		t.Errorf("expected ErrInterestNotFound, got %v", err)
	}
}

func TestListMyInterests(t *testing.T) {
	db := setupTestDB(t)
	service := NewInterestService(repository.NewRepository(db))
	ctx := context.Background()

	cropA := createTestCrop(t, db, "f@x.com", "Farmer", 50)
	cropB := createTestCrop(t, db, "g@x.com", "Grower", 30)
	buyer := Actor{Email: "b@x.com", DisplayName: "Buyer"}
	other := Actor{Email: "c@x.com", DisplayName: "Other"}

	if _, err := service.SubmitInterest(ctx, cropA.ID, buyer, 2, "a"); err != nil {
		t.Fatalf("SubmitInterest failed: %v", err)
	}
	if _, err := service.SubmitInterest(ctx, cropB.ID, other, 4, "b"); err != nil {
		t.Fatalf("SubmitInterest failed: %v", err)
	}

	crops, err := service.ListMyInterests(ctx, buyer)
	if err != nil {
		t.Fatalf("ListMyInterests failed: %v", err)
	}
	if len(crops) != 1 {
		t.Fatalf("expected 1 crop, got %d", len(crops))
	}
	if crops[0].ID != cropA.ID {
		t.Errorf("expected crop %s, got %s", cropA.ID, crops[0].ID)
	}
	if len(crops[0].Interests) != 1 || crops[0].Interests[0].UserEmail != buyer.Email {
		t.Errorf("expected only the buyer's interest, got %+v", crops[0].Interests)
	}
}
