package models

// Engagement status values.
const (
	EngagementPending   = "pending"
	EngagementAccepted  = "accepted"
	EngagementCompleted = "completed"
	EngagementCancelled = "cancelled"
)

// User roles.
const (
	RoleHirer  = "hirer"
	RoleWorker = "worker"
)

// Shift actions accepted by the shift tracker.
const (
	ShiftActionStart  = "start"
	ShiftActionPause  = "pause"
	ShiftActionResume = "resume"
	ShiftActionFinish = "finish"
)
