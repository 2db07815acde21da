package repository

import (
	"context"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestJobRepository_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	poster := testutil.CreateUser(t, db, "poster1", models.RolePoster)
	other := testutil.CreateUser(t, db, "poster2", models.RolePoster)

	job := &models.Job{
		Title:          "Label boxes",
		Slug:           "label-boxes-1a2b3c4d",
		Description:    "Label forty boxes",
		Reward:         25.5,
		RewardType:     models.RewardCash,
		PostedBy:       poster.ID,
		Department:     "Logistics",
		SkillsRequired: datatypes.JSONSlice[string]{"labeling", "lifting"},
		Status:         models.JobStatusOpen,
	}
	require.NoError(t, repo.Create(ctx, job))
	testutil.CreateJob(t, db, other, "Sort mail", 10, models.RewardCredits)

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Label boxes", got.Title)
		assert.Equal(t, []string{"labeling", "lifting"}, []string(got.SkillsRequired))

		_, err = repo.GetByID(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
		assert.Equal(t, "Job not found", err.Error())
	})

	t.Run("duplicate slug", func(t *testing.T) {
		dup := *job
		dup.ID = uuid.Nil
		err := repo.Create(ctx, &dup)
		assert.True(t, models.HasCode(err, models.CodeBadRequest))
	})

	t.Run("filters", func(t *testing.T) {
		byDept, err := repo.List(ctx, JobFilter{Department: "Logistics"}, models.Page{})
		require.NoError(t, err)
		require.Len(t, byDept, 1)
		assert.Equal(t, job.ID, byDept[0].ID)

		mine, err := repo.List(ctx, JobFilter{PostedBy: &other.ID}, models.Page{})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "Sort mail", mine[0].Title)

		done, err := repo.List(ctx, JobFilter{Status: models.JobStatusCompleted}, models.Page{})
		require.NoError(t, err)
		assert.Empty(t, done)
		assert.NotNil(t, done)
	})

	t.Run("update keeps slug", func(t *testing.T) {
		patched := *job
		patched.Title = "Label crates"
		patched.Slug = "changed"
		patched.IsFeatured = true
		require.NoError(t, repo.Update(ctx, &patched))

		got, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Label crates", got.Title)
		assert.Equal(t, "label-boxes-1a2b3c4d", got.Slug)
		assert.True(t, got.IsFeatured)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, job.ID, models.JobStatusInProgress))
		got, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusInProgress, got.Status)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, job.ID))
		err := repo.Delete(ctx, job.ID)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestJobRepository_ListPaginationSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewJobRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "jobs" WHERE department = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("IT", "open", 100, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	jobs, err := repo.List(context.Background(), JobFilter{Department: "IT", Status: models.JobStatusOpen}, models.Page{Skip: 5, Limit: 500})
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
