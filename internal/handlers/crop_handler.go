package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"krishilink/internal/auth"
	"krishilink/internal/services"
)

// CropHandler handles crop listing endpoints
type CropHandler struct {
	cropService *services.CropService
}

// NewCropHandler creates a new CropHandler
func NewCropHandler(cropService *services.CropService) *CropHandler {
	return &CropHandler{cropService: cropService}
}

// GetCrops returns all listings with optional filtering
// GET /api/crops?type=&search=&limit=&offset=
func (h *CropHandler) GetCrops(c *gin.Context) {
	cropType := c.Query("type")
	search := c.Query("search")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	crops, err := h.cropService.ListCrops(c.Request.Context(), cropType, search, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch crops"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    crops,
		"count":   len(crops),
	})
}

// GetCropByID returns a specific crop with its interests
// GET /api/crops/:id
func (h *CropHandler) GetCropByID(c *gin.Context) {
	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop id"})
		return
	}

	crop, err := h.cropService.GetCrop(c.Request.Context(), cropID)
	if err != nil {
		if errors.Is(err, services.ErrCropNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Crop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch crop"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    crop,
	})
}

// CreateCrop posts a new listing owned by the caller
// POST /api/crops
func (h *CropHandler) CreateCrop(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		Name         string          `json:"name" binding:"required"`
		Type         string          `json:"type" binding:"required"`
		PricePerUnit decimal.Decimal `json:"price_per_unit" binding:"required"`
		Unit         string          `json:"unit"`
		Quantity     float64         `json:"quantity"`
		Description  string          `json:"description"`
		Location     string          `json:"location"`
		Image        string          `json:"image"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crop, err := h.cropService.CreateCrop(c.Request.Context(), actor, services.CreateCropInput{
		Name:         req.Name,
		Type:         req.Type,
		PricePerUnit: req.PricePerUnit,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		Description:  req.Description,
		Location:     req.Location,
		Image:        req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCropNameRequired),
			errors.Is(err, services.ErrCropTypeRequired),
			errors.Is(err, services.ErrNegativePrice),
			errors.Is(err, services.ErrNegativeQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create crop"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    crop,
	})
}

// GetMyPosts returns the caller's own listings
// GET /api/my-posts
func (h *CropHandler) GetMyPosts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	crops, err := h.cropService.ListMyPosts(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    crops,
		"count":   len(crops),
	})
}

// requireActor reads the authenticated identity set by the auth middleware.
// Writes a 401 response and returns ok=false when it is missing.
func requireActor(c *gin.Context) (services.Actor, bool) {
	email, okEmail := auth.GetEmail(c)
	name, _ := auth.GetDisplayName(c)
	if !okEmail || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return services.Actor{}, false
	}
	if name == "" {
		name = "User"
	}
	return services.Actor{Email: email, DisplayName: name}, true
}
