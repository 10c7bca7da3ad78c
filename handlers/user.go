package handlers

import (
	"net/http"
	"strconv"

	userRepo "diarista/database/repository/user"
	"diarista/models"
	"diarista/services/rating"
	"diarista/services/user"
	"diarista/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account and profile endpoints.
type UserHandler struct {
	UserService   user.UserService
	RatingService rating.RatingService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us user.UserService, rs rating.RatingService) *UserHandler {
	return &UserHandler{UserService: us, RatingService: rs}
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.RegisterUser(req)
	if err != nil {
		logger.Error("User registration failed", zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.UserService.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles POST /api/users/logout.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.UserService.RevokeAuthToken(userID); err != nil {
		getLogger(c).Error("Logout failed", zap.String("id", userID), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// GetProfileHandler handles GET /api/users/me.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")
	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		getLogger(c).Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	// The profile view also shows the latest ratings received.
	ratings, err := h.RatingService.ListForUser(userID, 5)
	if err != nil {
		getLogger(c).Error("Failed to list ratings", zap.String("id", userID), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": usr, "recent_ratings": ratings})
}

// UpdateProfileHandler handles PUT /api/users/me.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.UserService.UpdateProfile(userID, req)
	if err != nil {
		logger.Error("Failed to update profile", zap.String("id", userID), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdatePasswordHandler handles PUT /api/users/me/password.
func (h *UserHandler) UpdatePasswordHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid password update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.UserService.UpdatePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		logger.Error("Password update failed", zap.String("id", userID), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// DeleteAccountHandler handles DELETE /api/users/me.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.UserService.DeleteUser(userID); err != nil {
		getLogger(c).Error("Account deletion failed", zap.String("id", userID), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// SearchWorkersHandler handles GET /api/workers.
func (h *UserHandler) SearchWorkersHandler(c *gin.Context) {
	search := userRepo.WorkerSearch{
		Query:    c.Query("q"),
		MinRate:  queryFloat(c, "min_rate"),
		MaxRate:  queryFloat(c, "max_rate"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 12),
	}

	page, err := h.UserService.SearchWorkers(search)
	if err != nil {
		getLogger(c).Error("Worker search failed", zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetWorkerHandler handles GET /api/workers/:id, a worker's public
// profile together with their latest received ratings.
func (h *UserHandler) GetWorkerHandler(c *gin.Context) {
	workerID := c.Param("id")

	worker, err := h.UserService.GetUserByID(workerID)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	if !worker.IsWorker() {
		c.JSON(http.StatusNotFound, gin.H{"error": "worker not found"})
		return
	}

	ratings, err := h.RatingService.ListForUser(workerID, 5)
	if err != nil {
		getLogger(c).Error("Failed to list worker ratings", zap.String("id", workerID), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker": worker, "recent_ratings": ratings})
}

func queryFloat(c *gin.Context, name string) float64 {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(c *gin.Context, name string, fallback int64) int64 {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
