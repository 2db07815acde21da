package repository

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()

	tests := []struct {
		name          string
		mockBehavior  func()
		expectedError string
	}{
		{
			name: "Success",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "role"}).
					AddRow(id.String(), "testuser", "test@example.com", "doer")
				mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
					WithArgs(sqlmock.AnyArg(), 1).
					WillReturnRows(rows)
			},
		},
		{
			name: "Not Found",
			mockBehavior: func() {
				mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
					WithArgs(sqlmock.AnyArg(), 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: models.CodeNotFound,
		},
		{
			name: "Database Error",
			mockBehavior: func() {
				mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
					WithArgs(sqlmock.AnyArg(), 1).
					WillReturnError(errors.New("connection reset"))
			},
			expectedError: models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, id)

			if tt.expectedError != "" {
				assert.True(t, models.HasCode(err, tt.expectedError), "got %v", err)
			} else if assert.NoError(t, err) {
				assert.Equal(t, "testuser", user.Username)
				assert.Equal(t, models.RoleDoer, user.Role)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_CreateUniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Username: "dup", Email: "dup@example.com", Role: models.RoleDoer})
	assert.True(t, models.HasCode(err, models.CodeBadRequest), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	poster := testutil.CreateUser(t, db, "poster1", models.RolePoster)
	testutil.CreateUser(t, db, "doer1", models.RoleDoer)
	testutil.CreateUser(t, db, "doer2", models.RoleDoer)

	t.Run("lookup by username and email", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "poster1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, poster.ID, got.ID)
		assert.NotEmpty(t, got.PasswordHash)

		got, err = repo.GetByEmail(ctx, "doer1@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)

		missing, err := repo.GetByUsername(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate username is a bad request", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "poster1", Email: "other@example.com", PasswordHash: "x", Role: models.RoleDoer})
		assert.True(t, models.HasCode(err, models.CodeBadRequest), "got %v", err)
	})

	t.Run("list filters by role", func(t *testing.T) {
		doers, err := repo.List(ctx, UserFilter{Role: models.RoleDoer}, models.Page{})
		require.NoError(t, err)
		assert.Len(t, doers, 2)

		all, err := repo.List(ctx, UserFilter{}, models.Page{Skip: 1, Limit: 1})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("update role", func(t *testing.T) {
		require.NoError(t, repo.UpdateRole(ctx, poster.ID, models.RoleAdmin))
		got, err := repo.GetByID(ctx, poster.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)

		err = repo.UpdateRole(ctx, uuid.New(), models.RoleAdmin)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, poster.ID))
		_, err := repo.GetByID(ctx, poster.ID)
		assert.True(t, models.HasCode(err, models.CodeNotFound))

		err = repo.Delete(ctx, poster.ID)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.username")))
	assert.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintError(errors.New("timeout")))
}
