package repository

import (
	"context"

	"jobboard/internal/cache"
	"jobboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobFilter holds exact-match filters for listing jobs.
type JobFilter struct {
	Department string
	Status     models.JobStatus
	PostedBy   *uuid.UUID
}

// JobRepository defines persistence operations for job listings.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, filter JobFilter, page models.Page) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a new JobRepository implementation.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewBadRequestError("Job slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := cache.Aside(ctx, cache.JobKey(id), &job, cache.JobTTL, func() error {
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
			return notFoundOrInternal(err, "Job")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter, page models.Page) ([]models.Job, error) {
	jobs := []models.Job{}
	q := r.db.WithContext(ctx).Model(&models.Job{})
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PostedBy != nil {
		q = q.Where("posted_by = ?", *filter.PostedBy)
	}
	if err := paginate(q.Order("created_at DESC"), page).Find(&jobs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

// Update writes every mutable column of job. The slug column is create-only.
func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	res := r.db.WithContext(ctx).Model(job).Select(
		"title", "description", "reward", "reward_type", "department",
		"estimated_time", "skills_required", "status", "is_featured", "image_url",
	).Updates(job)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Job")
	}
	cache.InvalidateJob(ctx, job.ID)
	return nil
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Job")
	}
	cache.InvalidateJob(ctx, id)
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Job{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Job")
	}
	cache.InvalidateJob(ctx, id)
	return nil
}
