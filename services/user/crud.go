package user

import (
	"strings"

	userRepo "diarista/database/repository/user"
	"diarista/models"
)

// GetUserByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// UpdateProfile applies profile changes to the user's own record. Role,
// rating average and credentials are never touched here; hirers cannot
// set a daily rate.
func (s *DefaultUserService) UpdateProfile(userID string, changes models.User) (*models.User, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(changes.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(changes.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(changes.Email); v != "" {
		user.Email = v
	}
	if v := strings.TrimSpace(changes.Phone); v != "" {
		user.Phone = v
	}
	if changes.DailyRate > 0 && user.IsWorker() {
		user.DailyRate = changes.DailyRate
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user record.
func (s *DefaultUserService) DeleteUser(userID string) error {
	return s.Repo.Delete(userID)
}

// SearchWorkers pages through active workers matching the filters.
func (s *DefaultUserService) SearchWorkers(search userRepo.WorkerSearch) (*WorkerPage, error) {
	if search.Page < 1 {
		search.Page = 1
	}
	if search.PageSize < 1 {
		search.PageSize = 12
	}

	workers, total, err := s.Repo.SearchWorkers(search)
	if err != nil {
		return nil, err
	}
	return &WorkerPage{
		Workers:  workers,
		Total:    total,
		Page:     search.Page,
		PageSize: search.PageSize,
	}, nil
}

// GetAllUsers lists every user (admin).
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}
