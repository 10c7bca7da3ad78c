package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) *time.Time {
	t := time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
	return &t
}

func TestShiftState(t *testing.T) {
	tests := []struct {
		name  string
		shift Shift
		want  ShiftState
	}{
		{"no instants", Shift{}, ShiftNotStarted},
		{"started only", Shift{StartedAt: at(8, 0)}, ShiftInProgress},
		{"on break", Shift{StartedAt: at(8, 0), BreakStart: at(12, 0)}, ShiftOnBreak},
		{"break closed", Shift{StartedAt: at(8, 0), BreakStart: at(12, 0), BreakEnd: at(12, 30)}, ShiftInProgress},
		{"finished", Shift{StartedAt: at(8, 0), EndedAt: at(17, 0)}, ShiftFinished},
		{"finished during open break", Shift{StartedAt: at(8, 0), BreakStart: at(12, 0), EndedAt: at(13, 0)}, ShiftFinished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shift.State())
		})
	}
}

func TestHoursWorked(t *testing.T) {
	noon := *at(12, 0)

	t.Run("not started yields zero", func(t *testing.T) {
		s := Shift{}
		hours, clamped := s.HoursWorked(noon)
		assert.Zero(t, hours)
		assert.False(t, clamped)
	})

	t.Run("full day no break", func(t *testing.T) {
		s := Shift{StartedAt: at(8, 0), EndedAt: at(16, 0)}
		hours, clamped := s.HoursWorked(*at(23, 0))
		assert.Equal(t, 8.0, hours)
		assert.False(t, clamped)
	})

	t.Run("break excluded from total", func(t *testing.T) {
		s := Shift{StartedAt: at(8, 0), BreakStart: at(12, 0), BreakEnd: at(12, 30), EndedAt: at(17, 0)}
		hours, _ := s.HoursWorked(*at(23, 0))
		assert.Equal(t, 8.5, hours)
	})

	t.Run("live projection counts to now", func(t *testing.T) {
		s := Shift{StartedAt: at(8, 0)}
		hours, _ := s.HoursWorked(*at(10, 15))
		assert.Equal(t, 2.25, hours)
	})

	t.Run("open break freezes the projection", func(t *testing.T) {
		s := Shift{StartedAt: at(8, 0), BreakStart: at(12, 0)}
		hours, _ := s.HoursWorked(*at(15, 0))
		assert.Equal(t, 4.0, hours)
	})

	t.Run("closed break subtracted from live projection", func(t *testing.T) {
		s := Shift{StartedAt: at(8, 0), BreakStart: at(12, 0), BreakEnd: at(13, 0)}
		hours, _ := s.HoursWorked(*at(15, 0))
		assert.Equal(t, 6.0, hours)
	})

	t.Run("negative elapsed clamps to zero", func(t *testing.T) {
		s := Shift{StartedAt: at(16, 0), EndedAt: at(8, 0)}
		hours, clamped := s.HoursWorked(*at(23, 0))
		assert.Zero(t, hours)
		assert.True(t, clamped)
	})
}

func TestOvertime(t *testing.T) {
	t.Run("alert fires at the boundary inclusive", func(t *testing.T) {
		s := Shift{StartedAt: at(8, 0), EndedAt: at(16, 0)}
		assert.True(t, s.Overtime(*at(23, 0), 8.0))
	})

	t.Run("under the boundary stays quiet", func(t *testing.T) {
		s := Shift{StartedAt: at(8, 0), EndedAt: at(15, 59)}
		assert.False(t, s.Overtime(*at(23, 0), 8.0))
	})

	t.Run("not started never alerts", func(t *testing.T) {
		s := Shift{}
		assert.False(t, s.Overtime(*at(23, 0), 0))
	})

	t.Run("break pushes the projection back under", func(t *testing.T) {
		s := Shift{StartedAt: at(8, 0), BreakStart: at(12, 0), BreakEnd: at(13, 0)}
		assert.False(t, s.Overtime(*at(16, 30), 8.0))
		assert.True(t, s.Overtime(*at(17, 0), 8.0))
	})
}

func TestStatusAt(t *testing.T) {
	s := Shift{StartedAt: at(8, 0), BreakStart: at(12, 0), BreakEnd: at(12, 30)}
	status := s.StatusAt(*at(17, 0), 8.0)

	require.Equal(t, ShiftInProgress, status.State)
	assert.Equal(t, 8.5, status.TotalHours)
	assert.True(t, status.OvertimeAlert)
	assert.NotEmpty(t, status.StartedAt)
	assert.NotEmpty(t, status.BreakStart)
	assert.NotEmpty(t, status.BreakEnd)
	assert.Empty(t, status.EndedAt)
	assert.Empty(t, status.Warning)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 8.33, Round2(8.3333333))
	assert.Equal(t, 8.67, Round2(8.6666666))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 2.25, Round2(2.25))
}
