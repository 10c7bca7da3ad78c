package rating

import (
	"fmt"
	"testing"

	"diarista/models"
	"diarista/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRatingRepo struct {
	ratings  map[string]*models.Rating
	averages map[string]float64 // evaluatedID -> recomputed average
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{
		ratings:  make(map[string]*models.Rating),
		averages: make(map[string]float64),
	}
}

func (f *fakeRatingRepo) GetByID(id string) (*models.Rating, error) {
	r, ok := f.ratings[id]
	if !ok {
		return nil, fmt.Errorf("rating %s: %w", id, utils.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRatingRepo) FindByEngagementAndEvaluator(engagementID, evaluatorID string) (*models.Rating, error) {
	for _, r := range f.ratings {
		if r.EngagementID == engagementID && r.EvaluatorID == evaluatorID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) ListByEvaluated(userID string, limit int64) ([]models.Rating, error) {
	var out []models.Rating
	for _, r := range f.ratings {
		if r.EvaluatedID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) recompute(evaluatedID string) {
	var scores []int
	for _, r := range f.ratings {
		if r.EvaluatedID == evaluatedID {
			scores = append(scores, r.Score)
		}
	}
	f.averages[evaluatedID] = models.RatingAverage(scores)
}

func (f *fakeRatingRepo) Create(r *models.Rating) error {
	cp := *r
	f.ratings[r.ID] = &cp
	f.recompute(r.EvaluatedID)
	return nil
}

func (f *fakeRatingRepo) Update(id string, score int, comment string) error {
	r, ok := f.ratings[id]
	if !ok {
		return fmt.Errorf("rating %s: %w", id, utils.ErrNotFound)
	}
	r.Score = score
	r.Comment = comment
	f.recompute(r.EvaluatedID)
	return nil
}

func (f *fakeRatingRepo) Delete(id string, evaluatedID string) error {
	delete(f.ratings, id)
	f.recompute(evaluatedID)
	return nil
}

type fakeEngagementRepo struct {
	engagements map[string]*models.Engagement
}

func (f *fakeEngagementRepo) GetByID(id string) (*models.Engagement, error) {
	e, ok := f.engagements[id]
	if !ok {
		return nil, fmt.Errorf("engagement %s: %w", id, utils.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEngagementRepo) Create(e *models.Engagement) error { return nil }
func (f *fakeEngagementRepo) UpdateStatus(id, from, to string) (bool, error) {
	return false, nil
}
func (f *fakeEngagementRepo) FindAcceptedByWorker(workerID string) (*models.Engagement, error) {
	return nil, nil
}
func (f *fakeEngagementRepo) ListForUser(userID, role string, limit int64) ([]models.Engagement, error) {
	return nil, nil
}
func (f *fakeEngagementRepo) CountByStatus(userID, role string) (map[string]int64, error) {
	return nil, nil
}
func (f *fakeEngagementRepo) GetAll() ([]models.Engagement, error) { return nil, nil }

func newService(engs ...*models.Engagement) (*DefaultRatingService, *fakeRatingRepo) {
	ratings := newFakeRatingRepo()
	byID := make(map[string]*models.Engagement)
	for _, e := range engs {
		byID[e.ID] = e
	}
	svc := &DefaultRatingService{
		Ratings:     ratings,
		Engagements: &fakeEngagementRepo{engagements: byID},
	}
	return svc, ratings
}

func completedEngagement(id string) *models.Engagement {
	return &models.Engagement{
		ID:       id,
		HirerID:  "hirer-1",
		WorkerID: "worker-1",
		Status:   models.EngagementCompleted,
	}
}

func TestSubmit(t *testing.T) {
	t.Run("hirer rates the worker", func(t *testing.T) {
		svc, repo := newService(completedEngagement("eng-1"))

		r, err := svc.Submit("eng-1", "hirer-1", 5, "  excellent  ")
		require.NoError(t, err)
		assert.Equal(t, "worker-1", r.EvaluatedID)
		assert.Equal(t, "excellent", r.Comment)
		assert.Equal(t, 5.0, repo.averages["worker-1"])
	})

	t.Run("worker rates the hirer", func(t *testing.T) {
		svc, repo := newService(completedEngagement("eng-1"))

		r, err := svc.Submit("eng-1", "worker-1", 4, "")
		require.NoError(t, err)
		assert.Equal(t, "hirer-1", r.EvaluatedID)
		assert.Equal(t, 4.0, repo.averages["hirer-1"])
	})

	t.Run("score out of range", func(t *testing.T) {
		svc, _ := newService(completedEngagement("eng-1"))

		for _, score := range []int{0, 6, -1} {
			_, err := svc.Submit("eng-1", "hirer-1", score, "")
			assert.ErrorIs(t, err, utils.ErrInvalid)
		}
	})

	t.Run("strangers may not rate", func(t *testing.T) {
		svc, _ := newService(completedEngagement("eng-1"))

		_, err := svc.Submit("eng-1", "stranger", 3, "")
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("engagement must be completed", func(t *testing.T) {
		eng := completedEngagement("eng-1")
		eng.Status = models.EngagementAccepted
		svc, _ := newService(eng)

		_, err := svc.Submit("eng-1", "hirer-1", 3, "")
		assert.ErrorIs(t, err, utils.ErrInvalid)
	})

	t.Run("one rating per evaluator per engagement", func(t *testing.T) {
		svc, _ := newService(completedEngagement("eng-1"))

		_, err := svc.Submit("eng-1", "hirer-1", 5, "")
		require.NoError(t, err)
		_, err = svc.Submit("eng-1", "hirer-1", 4, "")
		assert.ErrorIs(t, err, utils.ErrConflict)
	})
}

func TestUpdateAndDeleteRecomputeAverage(t *testing.T) {
	svc, repo := newService(
		completedEngagement("eng-1"),
		completedEngagement("eng-2"),
		completedEngagement("eng-3"),
	)

	r1, err := svc.Submit("eng-1", "hirer-1", 3, "")
	require.NoError(t, err)
	_, err = svc.Submit("eng-2", "hirer-1", 4, "")
	require.NoError(t, err)
	r3, err := svc.Submit("eng-3", "hirer-1", 5, "")
	require.NoError(t, err)
	assert.Equal(t, 4.0, repo.averages["worker-1"])

	// Editing a score shifts the average.
	_, err = svc.Update(r1.ID, "hirer-1", 5, "better than I thought")
	require.NoError(t, err)
	assert.Equal(t, 4.67, repo.averages["worker-1"])

	// Removing one recomputes from what is left.
	err = svc.Delete(r3.ID, "hirer-1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, repo.averages["worker-1"])
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	svc, _ := newService(completedEngagement("eng-1"))

	r, err := svc.Submit("eng-1", "hirer-1", 4, "")
	require.NoError(t, err)

	_, err = svc.Update(r.ID, "worker-1", 5, "")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = svc.Delete(r.ID, "worker-1")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = svc.Delete("missing", "hirer-1")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
