package repository

import (
	"context"

	"jobboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewFilter narrows List to one job when JobID is set.
type ReviewFilter struct {
	JobID *uuid.UUID
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	List(ctx context.Context, filter ReviewFilter, page models.Page) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter, page models.Page) ([]models.Review, error) {
	reviews := []models.Review{}
	q := r.db.WithContext(ctx).Model(&models.Review{})
	if filter.JobID != nil {
		q = q.Where("job_id = ?", *filter.JobID)
	}
	if err := paginate(q.Order("created_at DESC"), page).Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}
