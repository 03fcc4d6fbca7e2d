package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"krishilink/internal/services"
)

// FarmerHandler serves the featured-farmers section
type FarmerHandler struct {
	statsService *services.FarmerStatsService
}

// NewFarmerHandler creates a new FarmerHandler
func NewFarmerHandler(statsService *services.FarmerStatsService) *FarmerHandler {
	return &FarmerHandler{statsService: statsService}
}

// GetFeaturedFarmers returns the top farmers by accepted interests
// GET /api/farmers/featured?limit=
func (h *FarmerHandler) GetFeaturedFarmers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	farmers, err := h.statsService.TopFarmers(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured farmers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    farmers,
		"count":   len(farmers),
	})
}
