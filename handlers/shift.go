package handlers

import (
	"net/http"

	"diarista/services/shift"
	"diarista/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShiftHandler exposes the work-shift tracking endpoints.
type ShiftHandler struct {
	Tracker shift.Tracker
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(tracker shift.Tracker) *ShiftHandler {
	return &ShiftHandler{Tracker: tracker}
}

// ActionHandler handles POST /api/shifts/:engagementID/:action with
// action in {start, pause, resume, finish}. A guarded no-op still
// returns 200; the status payload carries the warning.
func (h *ShiftHandler) ActionHandler(c *gin.Context) {
	engagementID := c.Param("engagementID")
	action := c.Param("action")

	status, err := h.Tracker.PerformAction(engagementID, c.GetString("userID"), action)
	if err != nil {
		getLogger(c).Warn("Shift action failed",
			zap.String("engagementID", engagementID),
			zap.String("action", action),
			zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// StatusHandler handles GET /api/shifts/:engagementID/status, the live
// projection polled by both parties' panels.
func (h *ShiftHandler) StatusHandler(c *gin.Context) {
	engagementID := c.Param("engagementID")

	status, err := h.Tracker.GetStatus(engagementID, c.GetString("userID"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}
