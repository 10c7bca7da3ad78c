package user

import (
	"context"
	"fmt"
	"time"

	"diarista/models"
	"diarista/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser validates required fields, hashes the password, persists
// the user and issues a token.
func (s *DefaultUserService) RegisterUser(user models.User) (*AuthResponse, error) {
	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", utils.ErrInvalid)
	}
	if user.Username == "" {
		return nil, fmt.Errorf("username is required: %w", utils.ErrInvalid)
	}
	if user.Role != models.RoleHirer && user.Role != models.RoleWorker {
		return nil, fmt.Errorf("role must be hirer or worker: %w", utils.ErrInvalid)
	}
	// Workers must advertise a daily rate; hirers never carry one.
	if user.Role == models.RoleWorker && user.DailyRate <= 0 {
		return nil, fmt.Errorf("workers must set a daily rate: %w", utils.ErrInvalid)
	}
	if user.Role == models.RoleHirer {
		user.DailyRate = 0
	}

	existing, err := s.Repo.GetByEmail(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s already exists: %w", user.Email, utils.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""

	user.ID = uuid.New().String()
	user.Active = true
	user.RatingAverage = 0

	if err := s.Repo.Create(&user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{ID: user.ID, Role: user.Role, Token: token}, nil
}

// AuthenticateUser verifies credentials and issues a fresh token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user for authentication: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("invalid credentials: %w", utils.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", utils.ErrForbidden)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{ID: user.ID, Role: user.Role, Token: token}, nil
}

// issueToken generates a JWT, stores its hash on the user record and
// primes the auth cache.
func (s *DefaultUserService) issueToken(user *models.User) (string, error) {
	token, err := utils.GenerateToken(user.ID, user.Role, utils.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate auth token: %w", err)
	}

	user.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(user); err != nil {
		return "", fmt.Errorf("failed to store token hash: %w", err)
	}

	if cache := utils.GetAuthCacheClient(); cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = cache.Set(ctx, utils.AuthCachePrefix+user.ID, user.TokenHash, utils.AuthCacheTTL).Err()
	}

	return token, nil
}

// UpdatePassword verifies the current password before replacing it.
func (s *DefaultUserService) UpdatePassword(userID, currentPassword, newPassword string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", utils.ErrForbidden)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("new password must be at least 8 characters: %w", utils.ErrInvalid)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	return s.Repo.Update(user)
}

// RevokeAuthToken clears the stored token hash and evicts the cache
// entry, invalidating every outstanding token for the user.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	user.TokenHash = ""
	if err := s.Repo.Update(user); err != nil {
		return err
	}

	if cache := utils.GetAuthCacheClient(); cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = cache.Del(ctx, utils.AuthCachePrefix+userID).Err()
	}
	return nil
}
