package models

import (
	"math"
	"time"
)

// ShiftState describes the lifecycle position of a day's shift. It is a
// pure function of which instants have been recorded, nothing else.
type ShiftState string

const (
	ShiftNotStarted ShiftState = "not_started"
	ShiftInProgress ShiftState = "in_progress"
	ShiftOnBreak    ShiftState = "on_break"
	ShiftFinished   ShiftState = "finished"
)

// Shift is one calendar day's work log for an engagement. The four
// instants are populated progressively as the worker starts, pauses,
// resumes and finishes; each may only be set once. There is exactly one
// shift per (engagement, date), enforced by a unique index.
type Shift struct {
	ID           string     `bson:"id" json:"id"`
	EngagementID string     `bson:"engagement_id" json:"engagement_id"`
	Date         string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartedAt    *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	BreakStart   *time.Time `bson:"break_start,omitempty" json:"break_start,omitempty"`
	BreakEnd     *time.Time `bson:"break_end,omitempty" json:"break_end,omitempty"`
	EndedAt      *time.Time `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
	// TotalHours is derived; persisted only once both start and end are set.
	TotalHours float64   `bson:"total_hours" json:"total_hours"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// State derives the shift state from the recorded instants.
func (s *Shift) State() ShiftState {
	switch {
	case s.StartedAt == nil:
		return ShiftNotStarted
	case s.EndedAt != nil:
		return ShiftFinished
	case s.BreakStart != nil && s.BreakEnd == nil:
		return ShiftOnBreak
	default:
		return ShiftInProgress
	}
}

// HoursWorked computes worked hours up to now (or up to the recorded end
// once the shift is finished), excluding the break interval. While the
// shift is on break the projection only counts up to the break start.
// A negative elapsed duration (clock skew, edited instants) is clamped
// to zero; the second return value reports that the clamp fired.
func (s *Shift) HoursWorked(now time.Time) (float64, bool) {
	if s.StartedAt == nil {
		return 0, false
	}

	end := now
	switch {
	case s.EndedAt != nil:
		end = *s.EndedAt
	case s.BreakStart != nil && s.BreakEnd == nil:
		// Currently on break: break time is excluded from the live
		// projection as well, not just the final total.
		end = *s.BreakStart
	}

	elapsed := end.Sub(*s.StartedAt)
	if s.BreakStart != nil && s.BreakEnd != nil {
		elapsed -= s.BreakEnd.Sub(*s.BreakStart)
	}

	if elapsed < 0 {
		return 0, true
	}
	return Round2(elapsed.Hours()), false
}

// Overtime reports whether the worked-hours projection has reached the
// given threshold. It is recomputed fresh on every read; a shift that
// has not started never raises the alert.
func (s *Shift) Overtime(now time.Time, threshold float64) bool {
	if s.State() == ShiftNotStarted {
		return false
	}
	hours, _ := s.HoursWorked(now)
	return hours >= threshold
}

// Round2 rounds to two decimal places using standard rounding. Worked
// hours and rating averages are both stored at this precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
