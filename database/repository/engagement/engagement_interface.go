package engagementRepo

import "diarista/models"

// EngagementRepository defines methods for engagement data access.
type EngagementRepository interface {
	// GetByID retrieves an engagement by its unique ID.
	GetByID(id string) (*models.Engagement, error)
	// Create inserts a new engagement record.
	Create(engagement *models.Engagement) error
	// UpdateStatus transitions an engagement from one status to another.
	// The update only applies while the engagement still holds the `from`
	// status; the return value reports whether this caller won the
	// transition.
	UpdateStatus(id, from, to string) (bool, error)
	// FindAcceptedByWorker returns the worker's currently accepted
	// engagement, nil when there is none.
	FindAcceptedByWorker(workerID string) (*models.Engagement, error)
	// ListForUser lists a user's engagements, newest first. Role selects
	// which side of the engagement the user is on.
	ListForUser(userID, role string, limit int64) ([]models.Engagement, error)
	// CountByStatus tallies a user's engagements per status.
	CountByStatus(userID, role string) (map[string]int64, error)
	// GetAll retrieves all engagements (admin listing).
	GetAll() ([]models.Engagement, error)
}
