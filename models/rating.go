package models

import "time"

// Rating is one score given by a party of a completed engagement to the
// other party. EvaluatedID is always derived from the engagement at
// write time, never taken from input.
type Rating struct {
	ID           string    `bson:"id" json:"id"`
	EngagementID string    `bson:"engagement_id" json:"engagement_id"`
	EvaluatorID  string    `bson:"evaluator_id" json:"evaluator_id"`
	EvaluatedID  string    `bson:"evaluated_id" json:"evaluated_id"`
	Score        int       `bson:"score" json:"score"` // 1..5
	Comment      string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// RatingAverage computes the arithmetic mean of the given scores to two
// decimal places. An empty set yields exactly 0.00.
func RatingAverage(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return Round2(float64(sum) / float64(len(scores)))
}
