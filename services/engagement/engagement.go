package engagement

import (
	"fmt"
	"strings"
	"time"

	engagementRepo "diarista/database/repository/engagement"
	userRepo "diarista/database/repository/user"
	"diarista/models"
	"diarista/utils"

	"github.com/google/uuid"
)

// Dashboard summarises a user's engagements for their panel view.
type Dashboard struct {
	Total     int64               `json:"total"`
	ByStatus  map[string]int64    `json:"by_status"`
	Recent    []models.Engagement `json:"recent"`
	// Active is the worker's currently accepted engagement, nil for
	// hirers or when idle.
	Active *models.Engagement `json:"active,omitempty"`
}

// EngagementService defines business logic for service engagements.
type EngagementService interface {
	// Request creates a pending engagement from a hirer towards a worker.
	// The agreed rate is snapshotted from the worker's current daily rate.
	Request(hirerID, workerID, description, serviceDate string) (*models.Engagement, error)
	// Accept transitions a pending engagement to accepted. A worker may
	// hold only one accepted engagement at a time.
	Accept(engagementID, workerID string) (*models.Engagement, error)
	// Decline transitions a pending engagement to cancelled.
	Decline(engagementID, workerID string) (*models.Engagement, error)
	// Get returns an engagement to one of its parties.
	Get(engagementID, actorID string) (*models.Engagement, error)
	// ListForUser lists a user's engagements on their side of the deal.
	ListForUser(userID, role string, limit int64) ([]models.Engagement, error)
	// GetDashboard builds the panel summary for a user.
	GetDashboard(userID, role string) (*Dashboard, error)
}

// DefaultEngagementService is the production implementation.
type DefaultEngagementService struct {
	Repo  engagementRepo.EngagementRepository
	Users userRepo.UserRepository
}

// Request creates a pending engagement.
func (s *DefaultEngagementService) Request(hirerID, workerID, description, serviceDate string) (*models.Engagement, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("description is required: %w", utils.ErrInvalid)
	}
	if _, err := time.Parse("2006-01-02", serviceDate); err != nil {
		return nil, fmt.Errorf("service date must be YYYY-MM-DD: %w", utils.ErrInvalid)
	}

	hirer, err := s.Users.GetByID(hirerID)
	if err != nil {
		return nil, err
	}
	if !hirer.IsHirer() {
		return nil, fmt.Errorf("only hirers may request services: %w", utils.ErrForbidden)
	}

	worker, err := s.Users.GetByID(workerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsWorker() || !worker.Active {
		return nil, fmt.Errorf("worker %s: %w", workerID, utils.ErrNotFound)
	}

	eng := &models.Engagement{
		ID:          uuid.New().String(),
		HirerID:     hirerID,
		WorkerID:    workerID,
		Description: description,
		ServiceDate: serviceDate,
		AgreedRate:  worker.DailyRate,
		Status:      models.EngagementPending,
	}
	if err := s.Repo.Create(eng); err != nil {
		return nil, err
	}
	return eng, nil
}

// Accept moves a pending engagement to accepted, enforcing the
// one-active-engagement-per-worker rule.
func (s *DefaultEngagementService) Accept(engagementID, workerID string) (*models.Engagement, error) {
	eng, err := s.Repo.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if eng.WorkerID != workerID {
		return nil, fmt.Errorf("engagement belongs to another worker: %w", utils.ErrForbidden)
	}
	if eng.Status != models.EngagementPending {
		return nil, fmt.Errorf("engagement is not pending: %w", utils.ErrConflict)
	}

	active, err := s.Repo.FindAcceptedByWorker(workerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("worker already has an active engagement: %w", utils.ErrConflict)
	}

	won, err := s.Repo.UpdateStatus(engagementID, models.EngagementPending, models.EngagementAccepted)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("engagement is no longer pending: %w", utils.ErrConflict)
	}

	eng.Status = models.EngagementAccepted
	return eng, nil
}

// Decline moves a pending engagement to cancelled.
func (s *DefaultEngagementService) Decline(engagementID, workerID string) (*models.Engagement, error) {
	eng, err := s.Repo.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if eng.WorkerID != workerID {
		return nil, fmt.Errorf("engagement belongs to another worker: %w", utils.ErrForbidden)
	}

	won, err := s.Repo.UpdateStatus(engagementID, models.EngagementPending, models.EngagementCancelled)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("engagement is not pending: %w", utils.ErrConflict)
	}

	eng.Status = models.EngagementCancelled
	return eng, nil
}

// Get returns the engagement to one of its parties.
func (s *DefaultEngagementService) Get(engagementID, actorID string) (*models.Engagement, error) {
	eng, err := s.Repo.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if !eng.IsParty(actorID) {
		return nil, fmt.Errorf("only engagement parties may view it: %w", utils.ErrForbidden)
	}
	return eng, nil
}

// ListForUser lists a user's engagements.
func (s *DefaultEngagementService) ListForUser(userID, role string, limit int64) ([]models.Engagement, error) {
	return s.Repo.ListForUser(userID, role, limit)
}

// GetDashboard builds the panel summary for a user.
func (s *DefaultEngagementService) GetDashboard(userID, role string) (*Dashboard, error) {
	counts, err := s.Repo.CountByStatus(userID, role)
	if err != nil {
		return nil, err
	}
	recent, err := s.Repo.ListForUser(userID, role, 10)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	dash := &Dashboard{Total: total, ByStatus: counts, Recent: recent}
	if role == models.RoleWorker {
		active, err := s.Repo.FindAcceptedByWorker(userID)
		if err != nil {
			return nil, err
		}
		dash.Active = active
	}
	return dash, nil
}
