package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"krishilink/internal/auth"
	"krishilink/internal/config"
	"krishilink/internal/database"
	"krishilink/internal/handlers"
	"krishilink/internal/jobs"
	"krishilink/internal/repository"
	"krishilink/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(database.GetDB())
	cropService := services.NewCropService(repo)
	interestService := services.NewInterestService(repo)
	statsService := services.NewFarmerStatsService(database.GetDB(), repo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	cropHandler := handlers.NewCropHandler(cropService)
	interestHandler := handlers.NewInterestHandler(interestService)
	farmerHandler := handlers.NewFarmerHandler(statsService)

	// Start farmer stats job (runs every hour)
	statsJob := jobs.NewFarmerStatsJob(database.GetDB(), repo)
	statsJob.Start(time.Hour)
	log.Println("Farmer stats job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:5173", // Vite dev server
		"http://localhost:3000",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:3000",
	}
	if cfg.App.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.App.FrontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public routes
	router.GET("/api/crops", cropHandler.GetCrops)
	router.GET("/api/crops/:id", cropHandler.GetCropByID)
	router.GET("/api/farmers/featured", farmerHandler.GetFeaturedFarmers)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/crops", cropHandler.CreateCrop)
		api.POST("/crops/:id/interest", interestHandler.SubmitInterest)
		api.PUT("/crops/:id/interest", interestHandler.ResolveInterest)
		api.GET("/my-posts", cropHandler.GetMyPosts)
		api.GET("/my-interests", interestHandler.GetMyInterests)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
