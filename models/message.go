package models

import "time"

// Message is one chat message inside an engagement's thread. Only the
// two parties of the engagement may post or read.
type Message struct {
	ID           string    `bson:"id" json:"id"`
	EngagementID string    `bson:"engagement_id" json:"engagement_id"`
	SenderID     string    `bson:"sender_id" json:"sender_id"`
	Body         string    `bson:"body" json:"body"`
	Read         bool      `bson:"read" json:"read"`
	SentAt       time.Time `bson:"sent_at" json:"sent_at"`
}
