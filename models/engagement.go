package models

import "time"

// Engagement represents one agreed piece of work between a hirer and a
// worker. At most one engagement per worker may be in the "accepted"
// status at any time; accepting a second one is rejected by the service
// layer.
type Engagement struct {
	ID          string    `bson:"id" json:"id"`
	HirerID     string    `bson:"hirer_id" json:"hirer_id"`
	WorkerID    string    `bson:"worker_id" json:"worker_id"`
	Description string    `bson:"description" json:"description"`
	ServiceDate string    `bson:"service_date" json:"service_date"` // "YYYY-MM-DD"
	// AgreedRate is snapshotted from the worker's daily rate when the
	// engagement is requested.
	AgreedRate float64   `bson:"agreed_rate" json:"agreed_rate"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// IsParty reports whether the given user is the hirer or the worker of
// this engagement.
func (e *Engagement) IsParty(userID string) bool {
	return userID == e.HirerID || userID == e.WorkerID
}

// Counterpart returns the other party of the engagement relative to the
// given user, or "" if the user is not a party.
func (e *Engagement) Counterpart(userID string) string {
	switch userID {
	case e.HirerID:
		return e.WorkerID
	case e.WorkerID:
		return e.HirerID
	}
	return ""
}
