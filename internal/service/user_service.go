package service

import (
	"context"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers lists accounts, optionally restricted to one role.
func (s *UserService) ListUsers(ctx context.Context, role string, page models.Page) ([]models.User, error) {
	filter := repository.UserFilter{}
	if strings.TrimSpace(role) != "" {
		parsed, ok := models.ParseRole(role)
		if !ok {
			return nil, models.NewBadRequestError("Invalid role")
		}
		filter.Role = parsed
	}
	return s.userRepo.List(ctx, filter, page)
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteUser removes id along with everything it owns. Admins cannot delete
// themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, id uuid.UUID) error {
	if actor != nil && actor.ID == id {
		return models.NewBadRequestError("Cannot delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// UpdateRole sets the role of the account named username.
func (s *UserService) UpdateRole(ctx context.Context, username, role string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}

	parsed, ok := models.ParseRole(role)
	if !ok {
		return nil, models.NewBadRequestError("Invalid role")
	}

	if err := s.userRepo.UpdateRole(ctx, user.ID, parsed); err != nil {
		return nil, err
	}
	user.Role = parsed
	return user, nil
}
