package models

import "time"

// User represents a platform account, either a hirer or a worker.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"-" json:"password,omitempty"` // Plain text, registration/login input only.
	PasswordHash string    `bson:"password_hash" json:"-"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string    `bson:"role" json:"role"` // "hirer" or "worker".
	DailyRate    float64   `bson:"daily_rate" json:"daily_rate"`
	// RatingAverage is derived from received ratings; never set directly.
	RatingAverage float64   `bson:"rating_average" json:"rating_average"`
	TokenHash     string    `bson:"token_hash,omitempty" json:"-"`
	Active        bool      `bson:"active" json:"active"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// FullName returns the user's display name, falling back to the username.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsWorker reports whether the user registered as a worker.
func (u *User) IsWorker() bool {
	return u.Role == RoleWorker
}

// IsHirer reports whether the user registered as a hirer.
func (u *User) IsHirer() bool {
	return u.Role == RoleHirer
}
