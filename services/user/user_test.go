package user

import (
	"fmt"
	"testing"

	userRepo "diarista/database/repository/user"
	"diarista/models"
	"diarista/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

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

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(u *models.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}

func (f *fakeUserRepo) SearchWorkers(search userRepo.WorkerSearch) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == models.RoleWorker && u.Active {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func registration(role string) models.User {
	return models.User{
		Username:  "maria",
		FirstName: "Maria",
		Email:     "maria@example.com",
		Password:  "hunter2hunter2",
		Role:      role,
		DailyRate: 120,
	}
}

func TestRegisterUser(t *testing.T) {
	t.Run("worker registration issues a token", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := &DefaultUserService{Repo: repo}

		resp, err := svc.RegisterUser(registration(models.RoleWorker))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, models.RoleWorker, resp.Role)

		stored := repo.users[resp.ID]
		require.NotNil(t, stored)
		assert.Empty(t, stored.Password)
		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotEmpty(t, stored.TokenHash)
		assert.True(t, stored.Active)
	})

	t.Run("hirers never carry a daily rate", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := &DefaultUserService{Repo: repo}

		resp, err := svc.RegisterUser(registration(models.RoleHirer))
		require.NoError(t, err)
		assert.Zero(t, repo.users[resp.ID].DailyRate)
	})

	t.Run("workers must set a daily rate", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newFakeUserRepo()}

		reg := registration(models.RoleWorker)
		reg.DailyRate = 0
		_, err := svc.RegisterUser(reg)
		assert.ErrorIs(t, err, utils.ErrInvalid)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newFakeUserRepo()}

		reg := registration("admin")
		_, err := svc.RegisterUser(reg)
		assert.ErrorIs(t, err, utils.ErrInvalid)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newFakeUserRepo()}

		_, err := svc.RegisterUser(registration(models.RoleWorker))
		require.NoError(t, err)
		_, err = svc.RegisterUser(registration(models.RoleWorker))
		assert.ErrorIs(t, err, utils.ErrConflict)
	})
}

func TestAuthenticateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}
	_, err := svc.RegisterUser(registration(models.RoleWorker))
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.AuthenticateUser("maria@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.AuthenticateUser("maria@example.com", "nope")
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.AuthenticateUser("ghost@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})
}

func TestUpdatePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := newFakeUserRepo(&models.User{ID: "u-1", PasswordHash: string(hash)})
	svc := &DefaultUserService{Repo: repo}

	assert.ErrorIs(t, svc.UpdatePassword("u-1", "wrong", "newpassword"), utils.ErrForbidden)
	assert.ErrorIs(t, svc.UpdatePassword("u-1", "oldpassword", "short"), utils.ErrInvalid)

	require.NoError(t, svc.UpdatePassword("u-1", "oldpassword", "newpassword"))
	err = bcrypt.CompareHashAndPassword([]byte(repo.users["u-1"].PasswordHash), []byte("newpassword"))
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("hirers cannot set a daily rate", func(t *testing.T) {
		repo := newFakeUserRepo(&models.User{ID: "u-1", Role: models.RoleHirer})
		svc := &DefaultUserService{Repo: repo}

		updated, err := svc.UpdateProfile("u-1", models.User{FirstName: "Ana", DailyRate: 300})
		require.NoError(t, err)
		assert.Equal(t, "Ana", updated.FirstName)
		assert.Zero(t, updated.DailyRate)
	})

	t.Run("workers may reprice themselves", func(t *testing.T) {
		repo := newFakeUserRepo(&models.User{ID: "u-1", Role: models.RoleWorker, DailyRate: 100})
		svc := &DefaultUserService{Repo: repo}

		updated, err := svc.UpdateProfile("u-1", models.User{DailyRate: 180})
		require.NoError(t, err)
		assert.Equal(t, 180.0, updated.DailyRate)
	})

	t.Run("blank fields are left alone", func(t *testing.T) {
		repo := newFakeUserRepo(&models.User{ID: "u-1", Role: models.RoleWorker, FirstName: "Maria", Phone: "123"})
		svc := &DefaultUserService{Repo: repo}

		updated, err := svc.UpdateProfile("u-1", models.User{Phone: "  "})
		require.NoError(t, err)
		assert.Equal(t, "Maria", updated.FirstName)
		assert.Equal(t, "123", updated.Phone)
	})
}

func TestSearchWorkersDefaultsPaging(t *testing.T) {
	repo := newFakeUserRepo(
		&models.User{ID: "w-1", Role: models.RoleWorker, Active: true},
		&models.User{ID: "h-1", Role: models.RoleHirer, Active: true},
	)
	svc := &DefaultUserService{Repo: repo}

	page, err := svc.SearchWorkers(userRepo.WorkerSearch{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Page)
	assert.EqualValues(t, 12, page.PageSize)
	assert.EqualValues(t, 1, page.Total)
}

func TestRevokeAuthToken(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: "u-1", TokenHash: "somehash"})
	svc := &DefaultUserService{Repo: repo}

	require.NoError(t, svc.RevokeAuthToken("u-1"))
	assert.Empty(t, repo.users["u-1"].TokenHash)
}
