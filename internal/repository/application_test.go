package repository

import (
	"context"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepository_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	poster := testutil.CreateUser(t, db, "poster1", models.RolePoster)
	doer := testutil.CreateUser(t, db, "doer1", models.RoleDoer)
	job := testutil.CreateJob(t, db, poster, "Stack chairs", 15, models.RewardCredits)

	app := &models.Application{JobID: job.ID, ApplicantID: doer.ID, Status: models.ApplicationPending, SubmittedWork: "I can do it"}
	require.NoError(t, repo.Create(ctx, app))

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.Exists(ctx, job.ID, doer.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, job.ID, poster.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list by job enriches applicant", func(t *testing.T) {
		details, err := repo.ListByJob(ctx, job.ID, models.Page{})
		require.NoError(t, err)
		require.Len(t, details, 1)
		require.NotNil(t, details[0].Applicant)
		assert.Equal(t, doer.ID, details[0].Applicant.ID)
		assert.Equal(t, "doer1", details[0].Applicant.Username)
		assert.Equal(t, "doer1@example.com", details[0].Applicant.Email)
	})

	t.Run("list by applicant", func(t *testing.T) {
		mine, err := repo.ListByApplicant(ctx, doer.ID, models.Page{})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, app.ID, mine[0].ID)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, app.ID, models.ApplicationAccepted))
		got, err := repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationAccepted, got.Status)
	})
}

func TestApplicationRepository_EarningsForUser(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	poster := testutil.CreateUser(t, db, "poster1", models.RolePoster)
	doer := testutil.CreateUser(t, db, "doer1", models.RoleDoer)
	other := testutil.CreateUser(t, db, "doer2", models.RoleDoer)

	credits := testutil.CreateJob(t, db, poster, "Credits job", 10, models.RewardCredits)
	cash := testutil.CreateJob(t, db, poster, "Cash job", 50, models.RewardCash)
	free := testutil.CreateJob(t, db, poster, "Free job", 0, models.RewardCash)
	pending := testutil.CreateJob(t, db, poster, "Pending job", 99, models.RewardCash)

	apply := func(job *models.Job, user *models.User, status models.ApplicationStatus) {
		require.NoError(t, repo.Create(ctx, &models.Application{JobID: job.ID, ApplicantID: user.ID, Status: status}))
	}
	apply(credits, doer, models.ApplicationCompleted)
	apply(cash, doer, models.ApplicationCompleted)
	apply(free, doer, models.ApplicationCompleted)
	apply(pending, doer, models.ApplicationAccepted)
	apply(cash, other, models.ApplicationCompleted)

	earnings, err := repo.EarningsForUser(ctx, doer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, earnings.TotalCredits, 0.001)
	assert.InDelta(t, 50.0, earnings.TotalCash, 0.001)
	assert.Equal(t, int64(3), earnings.TotalCompletedJobs)

	none, err := repo.EarningsForUser(ctx, poster.ID)
	require.NoError(t, err)
	assert.Zero(t, none.TotalCredits)
	assert.Zero(t, none.TotalCash)
	assert.Zero(t, none.TotalCompletedJobs)
}
