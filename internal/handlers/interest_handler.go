package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"krishilink/internal/models"
	"krishilink/internal/services"
)

// InterestHandler handles the interest negotiation endpoints
type InterestHandler struct {
	interestService *services.InterestService
}

// NewInterestHandler creates a new InterestHandler
func NewInterestHandler(interestService *services.InterestService) *InterestHandler {
	return &InterestHandler{interestService: interestService}
}

// SubmitInterest submits a buyer's interest on a crop
// POST /api/crops/:id/interest
func (h *InterestHandler) SubmitInterest(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop id"})
		return
	}

	var req struct {
		Quantity int    `json:"quantity" binding:"required"`
		Message  string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interest, err := h.interestService.SubmitInterest(c.Request.Context(), cropID, actor, req.Quantity, req.Message)
	if err != nil {
		writeInterestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    interest,
	})
}

// ResolveInterest applies the owner's accept/reject decision
// PUT /api/crops/:id/interest
func (h *InterestHandler) ResolveInterest(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid crop id"})
		return
	}

	var req struct {
		InterestID string `json:"interest_id" binding:"required"`
		Status     string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interestID, err := uuid.Parse(req.InterestID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid interest id"})
		return
	}

	interest, err := h.interestService.ResolveInterest(
		c.Request.Context(),
		cropID,
		interestID,
		models.InterestStatus(req.Status),
		actor,
	)
	if err != nil {
		writeInterestError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    interest,
	})
}

// GetMyInterests returns crops carrying the caller's interests
// GET /api/my-interests
func (h *InterestHandler) GetMyInterests(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	crops, err := h.interestService.ListMyInterests(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch interests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    crops,
		"count":   len(crops),
	})
}

// writeInterestError maps workflow errors to HTTP status codes
func writeInterestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOwnCrop),
		errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCropNotFound),
		errors.Is(err, services.ErrInterestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateInterest),
		errors.Is(err, services.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process interest"})
	}
}
