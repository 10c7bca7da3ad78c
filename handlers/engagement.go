package handlers

import (
	"net/http"

	"diarista/services/engagement"
	"diarista/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EngagementHandler exposes the service-request lifecycle endpoints.
type EngagementHandler struct {
	Service engagement.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(svc engagement.EngagementService) *EngagementHandler {
	return &EngagementHandler{Service: svc}
}

// RequestHandler handles POST /api/engagements, a hirer requesting a
// worker's services.
func (h *EngagementHandler) RequestHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		WorkerID    string `json:"worker_id" binding:"required"`
		Description string `json:"description" binding:"required"`
		ServiceDate string `json:"service_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid engagement request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	eng, err := h.Service.Request(c.GetString("userID"), req.WorkerID, req.Description, req.ServiceDate)
	if err != nil {
		logger.Error("Engagement request failed", zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, eng)
}

// AcceptHandler handles POST /api/engagements/:id/accept.
func (h *EngagementHandler) AcceptHandler(c *gin.Context) {
	eng, err := h.Service.Accept(c.Param("id"), c.GetString("userID"))
	if err != nil {
		getLogger(c).Warn("Engagement accept failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, eng)
}

// DeclineHandler handles POST /api/engagements/:id/decline.
func (h *EngagementHandler) DeclineHandler(c *gin.Context) {
	eng, err := h.Service.Decline(c.Param("id"), c.GetString("userID"))
	if err != nil {
		getLogger(c).Warn("Engagement decline failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, eng)
}

// GetHandler handles GET /api/engagements/:id.
func (h *EngagementHandler) GetHandler(c *gin.Context) {
	eng, err := h.Service.Get(c.Param("id"), c.GetString("userID"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, eng)
}

// ListHandler handles GET /api/engagements.
func (h *EngagementHandler) ListHandler(c *gin.Context) {
	engagements, err := h.Service.ListForUser(c.GetString("userID"), c.GetString("role"), queryInt(c, "limit", 0))
	if err != nil {
		getLogger(c).Error("Engagement list failed", zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, engagements)
}

// DashboardHandler handles GET /api/engagements/dashboard, the panel
// summary for the authenticated user.
func (h *EngagementHandler) DashboardHandler(c *gin.Context) {
	dash, err := h.Service.GetDashboard(c.GetString("userID"), c.GetString("role"))
	if err != nil {
		getLogger(c).Error("Dashboard failed", zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dash)
}
