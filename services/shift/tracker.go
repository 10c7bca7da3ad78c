package shift

import (
	"fmt"
	"time"

	engagementRepo "diarista/database/repository/engagement"
	shiftRepo "diarista/database/repository/shift"
	"diarista/models"
	"diarista/utils"

	"go.uber.org/zap"
)

// Tracker governs the lifecycle of a day's work shift: starting,
// pausing, resuming and finishing, plus the read-only status projection.
type Tracker interface {
	// PerformAction applies one shift action for the worker's engagement.
	// An action whose guard is not met is a no-op; the returned status
	// carries a warning instead of an error.
	PerformAction(engagementID, workerID, action string) (*models.ShiftStatus, error)
	// GetStatus returns today's shift projection for a party of the
	// engagement. When no shift exists yet the state is not_started with
	// zero hours.
	GetStatus(engagementID, actorID string) (*models.ShiftStatus, error)
}

// DefaultTracker is the production implementation.
type DefaultTracker struct {
	Shifts      shiftRepo.ShiftRepository
	Engagements engagementRepo.EngagementRepository
	// OvertimeThreshold is the worked-hours boundary for the alert.
	OvertimeThreshold float64
	// Now overrides the time source; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultTracker) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultTracker) threshold() float64 {
	if s.OvertimeThreshold > 0 {
		return s.OvertimeThreshold
	}
	return 8.0
}

// PerformAction applies a shift action for today. The engagement must be
// accepted and belong to the worker; the shift record for today is
// created lazily on the first action.
func (s *DefaultTracker) PerformAction(engagementID, workerID, action string) (*models.ShiftStatus, error) {
	eng, err := s.Engagements.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if eng.WorkerID != workerID {
		return nil, fmt.Errorf("only the engaged worker may log shift actions: %w", utils.ErrForbidden)
	}

	now := s.now()

	if eng.Status != models.EngagementAccepted {
		// Out-of-status action is a guard violation, not an error: report
		// today's shift as-is with a warning.
		return s.statusWithWarning(engagementID, now, "engagement is not active")
	}

	sh, err := s.Shifts.GetOrCreate(engagementID, now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	warning := ""
	switch action {
	case models.ShiftActionStart:
		warning, err = s.applyInstant(sh, shiftRepo.FieldStartedAt, sh.StartedAt == nil,
			now, "shift already started today")
	case models.ShiftActionPause:
		warning, err = s.applyInstant(sh, shiftRepo.FieldBreakStart,
			sh.StartedAt != nil && sh.BreakStart == nil, now, "cannot pause now")
	case models.ShiftActionResume:
		warning, err = s.applyInstant(sh, shiftRepo.FieldBreakEnd,
			sh.BreakStart != nil && sh.BreakEnd == nil, now, "cannot resume now")
	case models.ShiftActionFinish:
		warning, err = s.finish(sh, eng, now)
	default:
		return nil, fmt.Errorf("unknown shift action %q: %w", action, utils.ErrInvalid)
	}
	if err != nil {
		return nil, err
	}

	// Re-read so the response reflects the persisted record, including
	// writes from a concurrent caller that beat this one.
	current, err := s.Shifts.Find(engagementID, now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = sh
	}

	status := current.StatusAt(now, s.threshold())
	status.Warning = warning
	s.logClamp(current, now)
	return &status, nil
}

// applyInstant records one instant when its guard holds. The repository
// write re-checks the guard (field still unset), so a racing duplicate
// degrades to a warning.
func (s *DefaultTracker) applyInstant(sh *models.Shift, field string, guard bool, now time.Time, warning string) (string, error) {
	if !guard {
		return warning, nil
	}
	won, err := s.Shifts.SetInstant(sh.ID, field, now)
	if err != nil {
		return "", err
	}
	if !won {
		return warning, nil
	}
	return "", nil
}

// finish closes the shift, persisting the derived total and completing
// the engagement in one transaction.
func (s *DefaultTracker) finish(sh *models.Shift, eng *models.Engagement, now time.Time) (string, error) {
	if sh.StartedAt == nil || sh.EndedAt != nil {
		return "cannot finish now", nil
	}

	ended := now
	closing := *sh
	closing.EndedAt = &ended
	total, clamped := closing.HoursWorked(now)
	if clamped {
		utils.GetLogger().Warn("negative elapsed time clamped to zero",
			zap.String("shiftID", sh.ID),
			zap.String("engagementID", eng.ID))
	}

	won, err := s.Shifts.Finish(sh.ID, eng.ID, ended, total)
	if err != nil {
		return "", err
	}
	if !won {
		return "cannot finish now", nil
	}
	return "", nil
}

// GetStatus returns the projection for today's shift.
func (s *DefaultTracker) GetStatus(engagementID, actorID string) (*models.ShiftStatus, error) {
	eng, err := s.Engagements.GetByID(engagementID)
	if err != nil {
		return nil, err
	}
	if !eng.IsParty(actorID) {
		return nil, fmt.Errorf("only engagement parties may view the shift: %w", utils.ErrForbidden)
	}

	now := s.now()
	sh, err := s.Shifts.Find(engagementID, now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return &models.ShiftStatus{State: models.ShiftNotStarted}, nil
	}

	status := sh.StatusAt(now, s.threshold())
	s.logClamp(sh, now)
	return &status, nil
}

func (s *DefaultTracker) statusWithWarning(engagementID string, now time.Time, warning string) (*models.ShiftStatus, error) {
	sh, err := s.Shifts.Find(engagementID, now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	status := models.ShiftStatus{State: models.ShiftNotStarted}
	if sh != nil {
		status = sh.StatusAt(now, s.threshold())
	}
	status.Warning = warning
	return &status, nil
}

// logClamp flags the data-integrity condition when recorded instants
// produce a negative elapsed duration.
func (s *DefaultTracker) logClamp(sh *models.Shift, now time.Time) {
	if _, clamped := sh.HoursWorked(now); clamped {
		utils.GetLogger().Warn("shift instants produce negative elapsed time",
			zap.String("shiftID", sh.ID),
			zap.String("engagementID", sh.EngagementID))
	}
}
