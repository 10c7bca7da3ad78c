package rating

import (
	"fmt"
	"strings"

	engagementRepo "diarista/database/repository/engagement"
	ratingRepo "diarista/database/repository/rating"
	"diarista/models"
	"diarista/utils"

	"github.com/google/uuid"
)

// RatingService covers the rating write path and the received-ratings
// listing. Every write recomputes the evaluated user's average inside
// the same transaction (done at the repository layer).
type RatingService interface {
	// Submit creates a rating for a completed engagement. The evaluated
	// user is always the other party of the engagement; whatever the
	// caller claims is ignored.
	Submit(engagementID, evaluatorID string, score int, comment string) (*models.Rating, error)
	// Update rewrites the evaluator's own rating.
	Update(ratingID, evaluatorID string, score int, comment string) (*models.Rating, error)
	// Delete removes the evaluator's own rating.
	Delete(ratingID, evaluatorID string) error
	// ListForUser lists ratings received by a user, newest first.
	ListForUser(userID string, limit int64) ([]models.Rating, error)
}

// DefaultRatingService is the production implementation.
type DefaultRatingService struct {
	Ratings     ratingRepo.RatingRepository
	Engagements engagementRepo.EngagementRepository
}

// Submit validates and creates a rating, deriving the evaluated party.
func (s *DefaultRatingService) Submit(engagementID, evaluatorID string, score int, comment string) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("score must be between 1 and 5: %w", utils.ErrInvalid)
	}

	eng, err := s.Engagements.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if !eng.IsParty(evaluatorID) {
		return nil, fmt.Errorf("only engagement parties may rate: %w", utils.ErrForbidden)
	}
	if eng.Status != models.EngagementCompleted {
		return nil, fmt.Errorf("engagement must be completed before rating: %w", utils.ErrInvalid)
	}

	existing, err := s.Ratings.FindByEngagementAndEvaluator(engagementID, evaluatorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("engagement already rated: %w", utils.ErrConflict)
	}

	rating := &models.Rating{
		ID:           uuid.New().String(),
		EngagementID: engagementID,
		EvaluatorID:  evaluatorID,
		EvaluatedID:  eng.Counterpart(evaluatorID),
		Score:        score,
		Comment:      strings.TrimSpace(comment),
	}
	if err := s.Ratings.Create(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// Update rewrites the evaluator's own rating.
func (s *DefaultRatingService) Update(ratingID, evaluatorID string, score int, comment string) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("score must be between 1 and 5: %w", utils.ErrInvalid)
	}

	rating, err := s.Ratings.GetByID(ratingID)
	if err != nil {
		return nil, err
	}
	if rating.EvaluatorID != evaluatorID {
		return nil, fmt.Errorf("only the evaluator may edit a rating: %w", utils.ErrForbidden)
	}

	if err := s.Ratings.Update(ratingID, score, strings.TrimSpace(comment)); err != nil {
		return nil, err
	}
	rating.Score = score
	rating.Comment = strings.TrimSpace(comment)
	return rating, nil
}

// Delete removes the evaluator's own rating.
func (s *DefaultRatingService) Delete(ratingID, evaluatorID string) error {
	rating, err := s.Ratings.GetByID(ratingID)
	if err != nil {
		return err
	}
	if rating.EvaluatorID != evaluatorID {
		return fmt.Errorf("only the evaluator may delete a rating: %w", utils.ErrForbidden)
	}
	return s.Ratings.Delete(ratingID, rating.EvaluatedID)
}

// ListForUser lists ratings received by a user.
func (s *DefaultRatingService) ListForUser(userID string, limit int64) ([]models.Rating, error) {
	return s.Ratings.ListByEvaluated(userID, limit)
}
