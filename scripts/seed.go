package main

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"krishilink/internal/config"
	"krishilink/internal/database"
	"krishilink/internal/models"
)

// Seeds a handful of demo accounts and listings for local development.
// Run with: go run scripts/seed.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := []models.User{
		{Email: "rahim@krishilink.test", DisplayName: "Rahim Uddin", PasswordHash: string(hash)},
		{Email: "karima@krishilink.test", DisplayName: "Karima Begum", PasswordHash: string(hash)},
		{Email: "buyer@krishilink.test", DisplayName: "Demo Buyer", PasswordHash: string(hash)},
	}
	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", users[i].Email, err)
		}
	}

	crops := []models.Crop{
		{
			ID:           uuid.New(),
			Name:         "Basmati Rice",
			Type:         models.CropTypeGrain,
			PricePerUnit: decimal.NewFromInt(65),
			Unit:         "kg",
			Quantity:     500,
			Description:  "Freshly harvested aromatic rice.",
			Location:     "Dinajpur",
			OwnerEmail:   users[0].Email,
			OwnerName:    users[0].DisplayName,
			CreatedAt:    time.Now(),
		},
		{
			ID:           uuid.New(),
			Name:         "Tomatoes",
			Type:         models.CropTypeVegetable,
			PricePerUnit: decimal.NewFromInt(40),
			Unit:         "kg",
			Quantity:     120,
			Description:  "Vine-ripened, picked this week.",
			Location:     "Jessore",
			OwnerEmail:   users[1].Email,
			OwnerName:    users[1].DisplayName,
			CreatedAt:    time.Now(),
		},
	}
	for i := range crops {
		if err := db.Where("name = ? AND owner_email = ?", crops[i].Name, crops[i].OwnerEmail).
			FirstOrCreate(&crops[i]).Error; err != nil {
			log.Fatalf("Failed to seed crop %s: %v", crops[i].Name, err)
		}
	}

	log.Printf("Seeded %d users and %d crops", len(users), len(crops))
}
