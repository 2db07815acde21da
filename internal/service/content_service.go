package service

import (
	"context"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CaseStudyService struct {
	repo repository.CaseStudyRepository
}

type CreateCaseStudyInput struct {
	Title           string
	Category        string
	Problem         string
	Solution        string
	TimeToDeliver   int
	DifficultyLevel string
	Tags            []string
	ImageURL        string
}

func NewCaseStudyService(repo repository.CaseStudyRepository) *CaseStudyService {
	return &CaseStudyService{repo: repo}
}

func (s *CaseStudyService) List(ctx context.Context, page models.Page) ([]models.CaseStudy, error) {
	return s.repo.List(ctx, page)
}

func (s *CaseStudyService) Get(ctx context.Context, id uuid.UUID) (*models.CaseStudy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CaseStudyService) Create(ctx context.Context, in CreateCaseStudyInput) (*models.CaseStudy, error) {
	checks := []error{
		validation.ValidateTitle(in.Title),
		validation.Required("category", in.Category),
		validation.MaxLength("category", in.Category, validation.MaxCategoryLength),
		validation.Required("problem", in.Problem),
		validation.Required("solution", in.Solution),
		validation.ValidateImageURL(in.ImageURL),
	}
	for _, err := range checks {
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	if in.TimeToDeliver < 0 {
		return nil, models.NewValidationError("time_to_deliver must not be negative")
	}
	difficulty := models.Difficulty(strings.ToLower(strings.TrimSpace(in.DifficultyLevel)))
	if !difficulty.Valid() {
		return nil, models.NewBadRequestError("Invalid difficulty level")
	}

	tags := make(datatypes.JSONSlice[string], 0, len(in.Tags))
	for _, tag := range in.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	cs := &models.CaseStudy{
		Title:           strings.TrimSpace(in.Title),
		Category:        strings.TrimSpace(in.Category),
		Problem:         in.Problem,
		Solution:        in.Solution,
		TimeToDeliver:   in.TimeToDeliver,
		DifficultyLevel: difficulty,
		Tags:            tags,
		ImageURL:        strings.TrimSpace(in.ImageURL),
	}
	if err := s.repo.Create(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

type ReviewService struct {
	repo    repository.ReviewRepository
	jobRepo repository.JobRepository
}

type CreateReviewInput struct {
	JobID   *uuid.UUID
	Rating  int
	Comment string
}

func NewReviewService(repo repository.ReviewRepository, jobRepo repository.JobRepository) *ReviewService {
	return &ReviewService{repo: repo, jobRepo: jobRepo}
}

func (s *ReviewService) List(ctx context.Context, jobID *uuid.UUID, page models.Page) ([]models.Review, error) {
	return s.repo.List(ctx, repository.ReviewFilter{JobID: jobID}, page)
}

// Create stores a review by author. Ratings outside 1..5 are rejected and a
// referenced job must exist.
func (s *ReviewService) Create(ctx context.Context, author *models.User, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return nil, models.NewValidationError("rating must be between 1 and 5")
	}
	if in.JobID != nil {
		if _, err := s.jobRepo.GetByID(ctx, *in.JobID); err != nil {
			return nil, err
		}
	}

	review := &models.Review{
		UserID:  author.ID,
		JobID:   in.JobID,
		Rating:  in.Rating,
		Comment: in.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
