package userRepo

import (
	"diarista/models"

	"go.mongodb.org/mongo-driver/bson"
)

// WorkerSearch holds the filters accepted by the worker search listing.
type WorkerSearch struct {
	Query    string  // matches username, first or last name
	MinRate  float64 // 0 disables the bound
	MaxRate  float64 // 0 disables the bound
	Page     int64   // 1-based
	PageSize int64
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, nil when absent.
	GetByEmail(email string) (*models.User, error)
	// GetAll retrieves all users.
	GetAll() ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// SearchWorkers lists active workers matching the filters, ordered by
	// rating average descending then daily rate ascending.
	SearchWorkers(search WorkerSearch) ([]models.User, int64, error)
}
