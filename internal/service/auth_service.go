// Package service holds the business rules behind the HTTP handlers.
package service

import (
	"context"
	"strings"

	"jobboard/internal/auth"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/validation"
)

// AuthService registers accounts, checks credentials and resolves tokens.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenIssuer
}

type SignupInput struct {
	Username   string
	Email      string
	Password   string
	Role       string
	Department string
}

// LoginResult is the token pair returned by /auth/login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	department := strings.TrimSpace(in.Department)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDepartment(department); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, models.NewBadRequestError("Invalid role")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewBadRequestError("Username already registered")
	}
	existing, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewBadRequestError("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Department:   department,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user whose credentials match. Unknown usernames and
// wrong passwords produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, models.NewUnauthorizedError("Incorrect username or password")
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &LoginResult{AccessToken: token, TokenType: auth.TokenType}, nil
}

// ResolveToken maps a bearer token to its user. The user is reloaded so that
// role changes and deletions apply to tokens already issued.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Resolve(token)
	if err != nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("Could not validate credentials")
		}
		return nil, err
	}
	return user, nil
}
