package models

import "time"

// ShiftStatus is the shift projection returned to clients: current
// state, hours worked so far, the overtime alert, and the recorded
// instants rendered as "HH:MM" local time strings.
type ShiftStatus struct {
	State         ShiftState `json:"state"`
	TotalHours    float64    `json:"total_hours"`
	OvertimeAlert bool       `json:"overtime_alert"`
	StartedAt     string     `json:"started_at,omitempty"`
	BreakStart    string     `json:"break_start,omitempty"`
	BreakEnd      string     `json:"break_end,omitempty"`
	EndedAt       string     `json:"ended_at,omitempty"`
	// Warning carries the guard message when an action was a no-op.
	Warning string `json:"warning,omitempty"`
}

// StatusAt builds the client-facing projection of the shift as of now.
func (s *Shift) StatusAt(now time.Time, overtimeThreshold float64) ShiftStatus {
	hours, _ := s.HoursWorked(now)
	return ShiftStatus{
		State:         s.State(),
		TotalHours:    hours,
		OvertimeAlert: s.Overtime(now, overtimeThreshold),
		StartedAt:     clockString(s.StartedAt),
		BreakStart:    clockString(s.BreakStart),
		BreakEnd:      clockString(s.BreakEnd),
		EndedAt:       clockString(s.EndedAt),
	}
}

func clockString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("15:04")
}
