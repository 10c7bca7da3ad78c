package handlers

import (
	"net/http"

	engagementRepo "diarista/database/repository/engagement"
	shiftRepo "diarista/database/repository/shift"
	"diarista/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes back-office listings.
type AdminHandler struct {
	UserService user.UserService
	Engagements engagementRepo.EngagementRepository
	Shifts      shiftRepo.ShiftRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService, er engagementRepo.EngagementRepository, sr shiftRepo.ShiftRepository) *AdminHandler {
	return &AdminHandler{UserService: us, Engagements: er, Shifts: sr}
}

// ListUsersHandler handles GET /api/admin/users.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	logger := getLogger(c)

	users, err := h.UserService.GetAllUsers()
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListEngagementsHandler handles GET /api/admin/engagements.
func (h *AdminHandler) ListEngagementsHandler(c *gin.Context) {
	logger := getLogger(c)

	engagements, err := h.Engagements.GetAll()
	if err != nil {
		logger.Error("Failed to list engagements", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve engagements"})
		return
	}
	c.JSON(http.StatusOK, engagements)
}

// ListShiftsHandler handles GET /api/admin/shifts.
func (h *AdminHandler) ListShiftsHandler(c *gin.Context) {
	logger := getLogger(c)

	shifts, err := h.Shifts.GetAll()
	if err != nil {
		logger.Error("Failed to list shifts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shifts"})
		return
	}
	c.JSON(http.StatusOK, shifts)
}
