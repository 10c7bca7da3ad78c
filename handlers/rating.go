package handlers

import (
	"net/http"

	"diarista/services/rating"
	"diarista/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RatingHandler exposes the rating endpoints.
type RatingHandler struct {
	Service rating.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(svc rating.RatingService) *RatingHandler {
	return &RatingHandler{Service: svc}
}

// SubmitHandler handles POST /api/ratings.
func (h *RatingHandler) SubmitHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		EngagementID string `json:"engagement_id" binding:"required"`
		Score        int    `json:"score" binding:"required"`
		Comment      string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid rating request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rated, err := h.Service.Submit(req.EngagementID, c.GetString("userID"), req.Score, req.Comment)
	if err != nil {
		logger.Warn("Rating submit failed", zap.String("engagementID", req.EngagementID), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rated)
}

// UpdateHandler handles PUT /api/ratings/:id.
func (h *RatingHandler) UpdateHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Score   int    `json:"score" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid rating update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rated, err := h.Service.Update(c.Param("id"), c.GetString("userID"), req.Score, req.Comment)
	if err != nil {
		logger.Warn("Rating update failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rated)
}

// DeleteHandler handles DELETE /api/ratings/:id.
func (h *RatingHandler) DeleteHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id"), c.GetString("userID")); err != nil {
		getLogger(c).Warn("Rating delete failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating deleted"})
}
