package handlers

import (
	userRepo "diarista/database/repository/user"
)

// HandlerBundle groups the HTTP handlers so route registration takes a
// single dependency. UserRepo is exposed for the auth middleware.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	User       *UserHandler
	Engagement *EngagementHandler
	Shift      *ShiftHandler
	Rating     *RatingHandler
	Message    *MessageHandler
	Admin      *AdminHandler
}
