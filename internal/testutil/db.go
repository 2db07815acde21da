// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"jobboard/internal/auth"
	"jobboard/internal/database"
	"jobboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory SQLite database with the full schema
// and foreign keys enforced.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

// CreateUser inserts a user with the given role and the password "password123".
func CreateUser(t testing.TB, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		Department:   "Operations",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateJob inserts an open job owned by poster.
func CreateJob(t testing.TB, db *gorm.DB, poster *models.User, title string, reward float64, rewardType models.RewardType) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:       title,
		Slug:        title + "-" + uuid.NewString()[:8],
		Description: title + " description",
		Reward:      reward,
		RewardType:  rewardType,
		PostedBy:    poster.ID,
		Department:  poster.Department,
		Status:      models.JobStatusOpen,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
