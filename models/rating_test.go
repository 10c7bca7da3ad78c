package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingAverage(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"empty set is exactly zero", nil, 0},
		{"single score", []int{4}, 4.0},
		{"whole mean", []int{3, 4, 5}, 4.0},
		{"half mean", []int{4, 5}, 4.5},
		{"rounded to two decimals", []int{3, 3, 4}, 3.33},
		{"after removing a score", []int{3, 4}, 3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RatingAverage(tt.scores))
		})
	}
}

func TestEngagementParties(t *testing.T) {
	eng := Engagement{HirerID: "hirer-1", WorkerID: "worker-1"}

	assert.True(t, eng.IsParty("hirer-1"))
	assert.True(t, eng.IsParty("worker-1"))
	assert.False(t, eng.IsParty("stranger"))

	assert.Equal(t, "worker-1", eng.Counterpart("hirer-1"))
	assert.Equal(t, "hirer-1", eng.Counterpart("worker-1"))
	assert.Empty(t, eng.Counterpart("stranger"))
}
