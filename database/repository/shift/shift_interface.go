package shiftRepo

import (
	"time"

	"diarista/models"
)

// Instant field names accepted by SetInstant.
const (
	FieldStartedAt  = "started_at"
	FieldBreakStart = "break_start"
	FieldBreakEnd   = "break_end"
	FieldEndedAt    = "ended_at"
)

// ShiftRepository defines methods for shift data access.
type ShiftRepository interface {
	// GetOrCreate returns the shift for (engagement, date), creating an
	// empty one atomically if it does not exist yet. Concurrent callers
	// all observe the same record.
	GetOrCreate(engagementID, date string) (*models.Shift, error)
	// Find returns the shift for (engagement, date), nil when absent.
	Find(engagementID, date string) (*models.Shift, error)
	// SetInstant records one of the four instants, guarded so the field
	// is only written while still unset. Reports whether this caller won
	// the write.
	SetInstant(shiftID, field string, at time.Time) (bool, error)
	// Finish atomically records the end instant and derived total hours
	// on the shift and completes the owning engagement, all in one
	// transaction. Reports false when the shift was already finished.
	Finish(shiftID, engagementID string, endedAt time.Time, totalHours float64) (bool, error)
	// ListOpen returns shifts for the given date that have started but
	// not finished (reminder scans).
	ListOpen(date string) ([]models.Shift, error)
	// GetAll retrieves all shifts (admin listing).
	GetAll() ([]models.Shift, error)
}
