package repository

import (
	"context"
	"testing"

	"jobboard/internal/cache"
	"jobboard/internal/models"
	"jobboard/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCache points the package-level cache at a fresh miniredis for the
// duration of the test. Tests using it must not run in parallel.
func withCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewClient(mr.Addr())
	require.NoError(t, err)
	cache.SetClient(c)
	t.Cleanup(func() { _ = cache.Close() })
	return mr
}

func TestJobRepository_CacheAside(t *testing.T) {
	mr := withCache(t)
	db := testutil.NewSQLiteDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	poster := testutil.CreateUser(t, db, "cachedposter", models.RolePoster)
	job := testutil.CreateJob(t, db, poster, "Water plants", 15, models.RewardCredits)
	key := cache.JobKey(job.ID)

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Water plants", got.Title)
	assert.True(t, mr.Exists(key))

	// A write behind the repository's back is invisible until invalidation.
	require.NoError(t, db.Model(&models.Job{}).Where("id = ?", job.ID).Update("title", "Raw write").Error)
	got, err = repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Water plants", got.Title)

	t.Run("update invalidates", func(t *testing.T) {
		patched := *got
		patched.Title = "Water the ferns"
		require.NoError(t, repo.Update(ctx, &patched))
		assert.False(t, mr.Exists(key))

		fresh, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Water the ferns", fresh.Title)
	})

	t.Run("status update invalidates", func(t *testing.T) {
		_, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(ctx, job.ID, models.JobStatusCompleted))

		fresh, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusCompleted, fresh.Status)
	})

	t.Run("delete invalidates", func(t *testing.T) {
		_, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, job.ID))

		_, err = repo.GetByID(ctx, job.ID)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
		assert.False(t, mr.Exists(key))
	})
}

func TestUserRepository_CacheAside(t *testing.T) {
	mr := withCache(t)
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "cacheduser", models.RoleDoer)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoer, got.Role)
	assert.True(t, mr.Exists(cache.UserKey(user.ID)))

	require.NoError(t, repo.UpdateRole(ctx, user.ID, models.RolePoster))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RolePoster, got.Role)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestUserRepository_DeleteDropsCascadedJobsFromCache(t *testing.T) {
	mr := withCache(t)
	db := testutil.NewSQLiteDB(t)
	users := NewUserRepository(db)
	jobs := NewJobRepository(db)
	ctx := context.Background()

	poster := testutil.CreateUser(t, db, "leavingposter", models.RolePoster)
	first := testutil.CreateJob(t, db, poster, "Stack chairs", 20, models.RewardCash)
	second := testutil.CreateJob(t, db, poster, "Fold flyers", 5, models.RewardCredits)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		_, err := jobs.GetByID(ctx, id)
		require.NoError(t, err)
		require.True(t, mr.Exists(cache.JobKey(id)))
	}

	require.NoError(t, users.Delete(ctx, poster.ID))

	var remaining int64
	require.NoError(t, db.Model(&models.Job{}).Where("posted_by = ?", poster.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		assert.False(t, mr.Exists(cache.JobKey(id)))
		_, err := jobs.GetByID(ctx, id)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	}
}

func TestCaseStudyRepository_CacheAside(t *testing.T) {
	mr := withCache(t)
	db := testutil.NewSQLiteDB(t)
	repo := NewCaseStudyRepository(db)
	ctx := context.Background()

	cs := &models.CaseStudy{
		Title:           "Inventory sweep",
		Category:        "Operations",
		Problem:         "Stock counts drifted",
		Solution:        "Weekly one-day sweeps",
		TimeToDeliver:   480,
		DifficultyLevel: models.DifficultyEasy,
	}
	require.NoError(t, repo.Create(ctx, cs))

	got, err := repo.GetByID(ctx, cs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inventory sweep", got.Title)
	assert.True(t, mr.Exists(cache.CaseStudyKey(cs.ID)))

	require.NoError(t, db.Model(&models.CaseStudy{}).Where("id = ?", cs.ID).Update("title", "Renamed").Error)
	got, err = repo.GetByID(ctx, cs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inventory sweep", got.Title)

	missing := uuid.New()
	_, err = repo.GetByID(ctx, missing)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.False(t, mr.Exists(cache.CaseStudyKey(missing)))
}
