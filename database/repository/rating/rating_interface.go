package ratingRepo

import "diarista/models"

// RatingRepository defines methods for rating data access. Every write
// recomputes the evaluated user's rating average inside the same
// transaction, so readers never observe a rating change without the
// matching average.
type RatingRepository interface {
	// GetByID retrieves a rating by its unique ID.
	GetByID(id string) (*models.Rating, error)
	// FindByEngagementAndEvaluator returns the evaluator's rating for an
	// engagement, nil when absent.
	FindByEngagementAndEvaluator(engagementID, evaluatorID string) (*models.Rating, error)
	// ListByEvaluated lists ratings received by a user, newest first.
	// A limit of 0 lists all of them.
	ListByEvaluated(userID string, limit int64) ([]models.Rating, error)
	// Create inserts the rating and recomputes the evaluated user's
	// average transactionally.
	Create(rating *models.Rating) error
	// Update rewrites the score and comment and recomputes the average
	// transactionally.
	Update(id string, score int, comment string) error
	// Delete removes the rating and recomputes the average
	// transactionally.
	Delete(id string, evaluatedID string) error
}
