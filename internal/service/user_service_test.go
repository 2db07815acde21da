package service

import (
	"context"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_ListUsers(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var got repository.UserFilter
	repo.listFn = func(_ context.Context, f repository.UserFilter, _ models.Page) ([]models.User, error) {
		got = f
		return []models.User{{Username: "dana"}}, nil
	}
	svc := NewUserService(repo)

	users, err := svc.ListUsers(context.Background(), " Doer ", models.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, models.RoleDoer, got.Role)

	_, err = svc.ListUsers(context.Background(), "owner", models.Page{})
	assert.True(t, models.HasCode(err, models.CodeBadRequest))
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	target := &models.User{ID: uuid.New(), Role: models.RoleDoer}

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		if id == target.ID {
			return target, nil
		}
		return nil, models.NewNotFoundError("User")
	}
	var deleted []uuid.UUID
	repo.deleteFn = func(_ context.Context, id uuid.UUID) error {
		deleted = append(deleted, id)
		return nil
	}
	svc := NewUserService(repo)

	err := svc.DeleteUser(context.Background(), admin, admin.ID)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete your own account", err.Error())

	err = svc.DeleteUser(context.Background(), admin, uuid.New())
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	require.NoError(t, svc.DeleteUser(context.Background(), admin, target.ID))
	assert.Equal(t, []uuid.UUID{target.ID}, deleted)
}

func TestUserService_UpdateRole(t *testing.T) {
	t.Parallel()

	existing := &models.User{ID: uuid.New(), Username: "erin", Role: models.RoleDoer}
	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == existing.Username {
			return existing, nil
		}
		return nil, nil
	}
	var updatedRole models.Role
	repo.updateRoleFn = func(_ context.Context, _ uuid.UUID, role models.Role) error {
		updatedRole = role
		return nil
	}
	svc := NewUserService(repo)

	user, err := svc.UpdateRole(context.Background(), " erin ", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, models.RoleAdmin, updatedRole)

	_, err = svc.UpdateRole(context.Background(), "ghost", "admin")
	require.Error(t, err)
	assert.Equal(t, "User not found", err.Error())

	_, err = svc.UpdateRole(context.Background(), "erin", "king")
	require.Error(t, err)
	assert.Equal(t, "Invalid role", err.Error())
}

func TestUserService_GetUser(t *testing.T) {
	t.Parallel()

	known := &models.User{ID: uuid.New(), Username: "fran", Role: models.RolePoster}
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		if id == known.ID {
			return known, nil
		}
		return nil, models.NewNotFoundError("User")
	}
	svc := NewUserService(repo)

	user, err := svc.GetUser(context.Background(), known.ID)
	require.NoError(t, err)
	assert.Equal(t, "fran", user.Username)

	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
