package engagement

import (
	"fmt"
	"testing"

	userRepo "diarista/database/repository/user"
	"diarista/models"
	"diarista/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeEngagementRepo struct {
	engagements map[string]*models.Engagement
}

func newFakeEngagementRepo(engs ...*models.Engagement) *fakeEngagementRepo {
	f := &fakeEngagementRepo{engagements: make(map[string]*models.Engagement)}
	for _, e := range engs {
		f.engagements[e.ID] = e
	}
	return f
}

func (f *fakeEngagementRepo) GetByID(id string) (*models.Engagement, error) {
	e, ok := f.engagements[id]
	if !ok {
		return nil, fmt.Errorf("engagement %s: %w", id, utils.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEngagementRepo) Create(e *models.Engagement) error {
	f.engagements[e.ID] = e
	return nil
}

func (f *fakeEngagementRepo) UpdateStatus(id, from, to string) (bool, error) {
	e, ok := f.engagements[id]
	if !ok || e.Status != from {
		return false, nil
	}
	e.Status = to
	return true, nil
}

func (f *fakeEngagementRepo) FindAcceptedByWorker(workerID string) (*models.Engagement, error) {
	for _, e := range f.engagements {
		if e.WorkerID == workerID && e.Status == models.EngagementAccepted {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEngagementRepo) ListForUser(userID, role string, limit int64) ([]models.Engagement, error) {
	var out []models.Engagement
	for _, e := range f.engagements {
		if (role == models.RoleWorker && e.WorkerID == userID) ||
			(role == models.RoleHirer && e.HirerID == userID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEngagementRepo) CountByStatus(userID, role string) (map[string]int64, error) {
	counts := make(map[string]int64)
	engs, _ := f.ListForUser(userID, role, 0)
	for _, e := range engs {
		counts[e.Status]++
	}
	return counts, nil
}

func (f *fakeEngagementRepo) GetAll() ([]models.Engagement, error) {
	var out []models.Engagement
	for _, e := range f.engagements {
		out = append(out, *e)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, utils.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetAll() ([]models.User, error)                { return nil, nil }
func (f *fakeUserRepo) Create(u *models.User) error                   { return nil }
func (f *fakeUserRepo) Update(u *models.User) error                   { return nil }
func (f *fakeUserRepo) Delete(id string) error                        { return nil }
func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}
func (f *fakeUserRepo) SearchWorkers(search userRepo.WorkerSearch) ([]models.User, int64, error) {
	return nil, 0, nil
}

func testHirer() *models.User {
	return &models.User{ID: "hirer-1", Role: models.RoleHirer, Active: true}
}

func testWorker() *models.User {
	return &models.User{ID: "worker-1", Role: models.RoleWorker, Active: true, DailyRate: 150}
}

func TestRequest(t *testing.T) {
	t.Run("snapshots the worker's daily rate", func(t *testing.T) {
		svc := &DefaultEngagementService{
			Repo:  newFakeEngagementRepo(),
			Users: newFakeUserRepo(testHirer(), testWorker()),
		}

		eng, err := svc.Request("hirer-1", "worker-1", "deep clean, two bedrooms", "2026-03-10")
		require.NoError(t, err)
		assert.Equal(t, models.EngagementPending, eng.Status)
		assert.Equal(t, 150.0, eng.AgreedRate)
		assert.NotEmpty(t, eng.ID)
	})

	t.Run("description is required", func(t *testing.T) {
		svc := &DefaultEngagementService{
			Repo:  newFakeEngagementRepo(),
			Users: newFakeUserRepo(testHirer(), testWorker()),
		}

		_, err := svc.Request("hirer-1", "worker-1", "   ", "2026-03-10")
		assert.ErrorIs(t, err, utils.ErrInvalid)
	})

	t.Run("service date must parse", func(t *testing.T) {
		svc := &DefaultEngagementService{
			Repo:  newFakeEngagementRepo(),
			Users: newFakeUserRepo(testHirer(), testWorker()),
		}

		_, err := svc.Request("hirer-1", "worker-1", "cleaning", "10/03/2026")
		assert.ErrorIs(t, err, utils.ErrInvalid)
	})

	t.Run("workers may not hire", func(t *testing.T) {
		svc := &DefaultEngagementService{
			Repo:  newFakeEngagementRepo(),
			Users: newFakeUserRepo(testHirer(), testWorker()),
		}

		_, err := svc.Request("worker-1", "worker-1", "cleaning", "2026-03-10")
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("inactive worker reads as not found", func(t *testing.T) {
		worker := testWorker()
		worker.Active = false
		svc := &DefaultEngagementService{
			Repo:  newFakeEngagementRepo(),
			Users: newFakeUserRepo(testHirer(), worker),
		}

		_, err := svc.Request("hirer-1", "worker-1", "cleaning", "2026-03-10")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})
}

func TestAccept(t *testing.T) {
	pending := func(id string) *models.Engagement {
		return &models.Engagement{
			ID:       id,
			HirerID:  "hirer-1",
			WorkerID: "worker-1",
			Status:   models.EngagementPending,
		}
	}

	t.Run("pending becomes accepted", func(t *testing.T) {
		repo := newFakeEngagementRepo(pending("eng-1"))
		svc := &DefaultEngagementService{Repo: repo, Users: newFakeUserRepo()}

		eng, err := svc.Accept("eng-1", "worker-1")
		require.NoError(t, err)
		assert.Equal(t, models.EngagementAccepted, eng.Status)
	})

	t.Run("another worker's engagement is off limits", func(t *testing.T) {
		repo := newFakeEngagementRepo(pending("eng-1"))
		svc := &DefaultEngagementService{Repo: repo, Users: newFakeUserRepo()}

		_, err := svc.Accept("eng-1", "worker-2")
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("one active engagement per worker", func(t *testing.T) {
		active := pending("eng-1")
		active.Status = models.EngagementAccepted
		repo := newFakeEngagementRepo(active, pending("eng-2"))
		svc := &DefaultEngagementService{Repo: repo, Users: newFakeUserRepo()}

		_, err := svc.Accept("eng-2", "worker-1")
		assert.ErrorIs(t, err, utils.ErrConflict)
	})

	t.Run("already decided engagement", func(t *testing.T) {
		done := pending("eng-1")
		done.Status = models.EngagementCancelled
		repo := newFakeEngagementRepo(done)
		svc := &DefaultEngagementService{Repo: repo, Users: newFakeUserRepo()}

		_, err := svc.Accept("eng-1", "worker-1")
		assert.ErrorIs(t, err, utils.ErrConflict)
	})
}

func TestDecline(t *testing.T) {
	repo := newFakeEngagementRepo(&models.Engagement{
		ID:       "eng-1",
		HirerID:  "hirer-1",
		WorkerID: "worker-1",
		Status:   models.EngagementPending,
	})
	svc := &DefaultEngagementService{Repo: repo, Users: newFakeUserRepo()}

	eng, err := svc.Decline("eng-1", "worker-1")
	require.NoError(t, err)
	assert.Equal(t, models.EngagementCancelled, eng.Status)

	// Declining twice loses the status race.
	_, err = svc.Decline("eng-1", "worker-1")
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestGetAndDashboard(t *testing.T) {
	accepted := &models.Engagement{
		ID: "eng-1", HirerID: "hirer-1", WorkerID: "worker-1",
		Status: models.EngagementAccepted,
	}
	completed := &models.Engagement{
		ID: "eng-2", HirerID: "hirer-1", WorkerID: "worker-1",
		Status: models.EngagementCompleted,
	}
	repo := newFakeEngagementRepo(accepted, completed)
	svc := &DefaultEngagementService{Repo: repo, Users: newFakeUserRepo()}

	t.Run("parties only", func(t *testing.T) {
		_, err := svc.Get("eng-1", "stranger")
		assert.ErrorIs(t, err, utils.ErrForbidden)

		eng, err := svc.Get("eng-1", "hirer-1")
		require.NoError(t, err)
		assert.Equal(t, "eng-1", eng.ID)
	})

	t.Run("worker dashboard carries the active engagement", func(t *testing.T) {
		dash, err := svc.GetDashboard("worker-1", models.RoleWorker)
		require.NoError(t, err)
		assert.Equal(t, int64(2), dash.Total)
		assert.Equal(t, int64(1), dash.ByStatus[models.EngagementAccepted])
		require.NotNil(t, dash.Active)
		assert.Equal(t, "eng-1", dash.Active.ID)
	})

	t.Run("hirer dashboard has no active slot", func(t *testing.T) {
		dash, err := svc.GetDashboard("hirer-1", models.RoleHirer)
		require.NoError(t, err)
		assert.Equal(t, int64(2), dash.Total)
		assert.Nil(t, dash.Active)
	})
}
