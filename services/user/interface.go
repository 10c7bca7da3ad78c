package user

import (
	userRepo "diarista/database/repository/user"
	"diarista/models"
)

// AuthResponse contains the authenticated user's ID, role and JWT token.
type AuthResponse struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// WorkerPage is one page of the worker search listing.
type WorkerPage struct {
	Workers  []models.User `json:"workers"`
	Total    int64         `json:"total"`
	Page     int64         `json:"page"`
	PageSize int64         `json:"page_size"`
}

// UserService defines business logic for user operations.
type UserService interface {
	// RegisterUser validates the registration details, creates the user,
	// generates a token, stores its hash, and returns ID plus token.
	RegisterUser(user models.User) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns ID plus token.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// GetUserByID retrieves a user by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// UpdateProfile applies profile changes to the user's own record.
	UpdateProfile(userID string, changes models.User) (*models.User, error)
	// UpdatePassword verifies the current password and replaces it.
	UpdatePassword(userID, currentPassword, newPassword string) error
	// RevokeAuthToken revokes the user's token (logout).
	RevokeAuthToken(userID string) error
	// DeleteUser removes a user record.
	DeleteUser(userID string) error
	// SearchWorkers pages through active workers matching the filters.
	SearchWorkers(search userRepo.WorkerSearch) (*WorkerPage, error)
	// GetAllUsers lists every user (admin).
	GetAllUsers() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
