package service

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/auth"
	"jobboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "service-test-secret-0123456789abcdef"

func validSignup() SignupInput {
	return SignupInput{
		Username:   "newdoer",
		Email:      "NewDoer@Example.com",
		Password:   "password123",
		Role:       "doer",
		Department: "IT",
	}
}

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.createFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewAuthService(repo, auth.NewTokenIssuer(testSecret, time.Minute))

		user, err := svc.Signup(context.Background(), validSignup())
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "newdoer@example.com", user.Email)
		assert.Equal(t, models.RoleDoer, user.Role)
		assert.NotEqual(t, "password123", saved.PasswordHash)
		assert.True(t, auth.VerifyPassword("password123", saved.PasswordHash))
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByUsernameFn = func(context.Context, string) (*models.User, error) {
			return &models.User{ID: uuid.New()}, nil
		}
		svc := NewAuthService(repo, auth.NewTokenIssuer(testSecret, time.Minute))

		_, err := svc.Signup(context.Background(), validSignup())
		assertCode(t, err, models.CodeBadRequest)
		assert.Contains(t, err.Error(), "Username already registered")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByEmailFn = func(context.Context, string) (*models.User, error) {
			return &models.User{ID: uuid.New()}, nil
		}
		svc := NewAuthService(repo, auth.NewTokenIssuer(testSecret, time.Minute))

		_, err := svc.Signup(context.Background(), validSignup())
		assertCode(t, err, models.CodeBadRequest)
		assert.Contains(t, err.Error(), "Email already registered")
	})

	t.Run("malformed email is a validation error", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), auth.NewTokenIssuer(testSecret, time.Minute))
		in := validSignup()
		in.Email = "not-an-email"
		_, err := svc.Signup(context.Background(), in)
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("unknown role is a bad request", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), auth.NewTokenIssuer(testSecret, time.Minute))
		in := validSignup()
		in.Role = "overlord"
		_, err := svc.Signup(context.Background(), in)
		assertCode(t, err, models.CodeBadRequest)
	})
}

func TestAuthService_LoginAndResolve(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	stored := &models.User{ID: uuid.New(), Username: "poster1", PasswordHash: hash, Role: models.RolePoster}

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "poster1" {
			return stored, nil
		}
		return nil, nil
	}
	repo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		if id == stored.ID {
			return stored, nil
		}
		return nil, models.NewNotFoundError("User")
	}
	tokens := auth.NewTokenIssuer(testSecret, time.Minute)
	svc := NewAuthService(repo, tokens)
	ctx := context.Background()

	result, err := svc.Login(ctx, "poster1", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", result.TokenType)

	user, err := svc.ResolveToken(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)

	_, err = svc.Login(ctx, "poster1", "wrong-password")
	assertCode(t, err, models.CodeUnauthorized)
	assert.Equal(t, "Incorrect username or password", err.Error())

	_, err = svc.Login(ctx, "ghost", "password123")
	assertCode(t, err, models.CodeUnauthorized)

	_, err = svc.ResolveToken(ctx, "garbage")
	assertCode(t, err, models.CodeUnauthorized)

	orphan, err := tokens.Issue(&models.User{ID: uuid.New(), Role: models.RoleDoer})
	require.NoError(t, err)
	_, err = svc.ResolveToken(ctx, orphan)
	assertCode(t, err, models.CodeUnauthorized)
}

func TestUserService(t *testing.T) {
	t.Parallel()

	admin := newUser(models.RoleAdmin)
	target := &models.User{ID: uuid.New(), Username: "target", Role: models.RoleDoer}

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		if id == target.ID {
			return target, nil
		}
		return nil, models.NewNotFoundError("User")
	}
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "target" {
			cp := *target
			return &cp, nil
		}
		return nil, nil
	}
	var deleted uuid.UUID
	repo.deleteFn = func(_ context.Context, id uuid.UUID) error {
		deleted = id
		return nil
	}
	svc := NewUserService(repo)
	ctx := context.Background()

	t.Run("cannot delete self", func(t *testing.T) {
		err := svc.DeleteUser(ctx, admin, admin.ID)
		assertCode(t, err, models.CodeBadRequest)
		assert.Equal(t, "Cannot delete your own account", err.Error())
	})

	t.Run("delete missing user", func(t *testing.T) {
		err := svc.DeleteUser(ctx, admin, uuid.New())
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("delete other user", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, admin, target.ID))
		assert.Equal(t, target.ID, deleted)
	})

	t.Run("update role", func(t *testing.T) {
		user, err := svc.UpdateRole(ctx, "target", "Poster")
		require.NoError(t, err)
		assert.Equal(t, models.RolePoster, user.Role)

		_, err = svc.UpdateRole(ctx, "target", "king")
		assertCode(t, err, models.CodeBadRequest)
		assert.Equal(t, "Invalid role", err.Error())

		_, err = svc.UpdateRole(ctx, "nobody", "doer")
		assertCode(t, err, models.CodeNotFound)
		assert.Equal(t, "User not found", err.Error())
	})

	t.Run("list rejects unknown role filter", func(t *testing.T) {
		_, err := svc.ListUsers(ctx, "wizard", models.Page{})
		assertCode(t, err, models.CodeBadRequest)

		users, err := svc.ListUsers(ctx, "", models.Page{})
		require.NoError(t, err)
		assert.NotNil(t, users)
	})
}
