package repository

import (
	"context"

	"jobboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationRepository defines persistence operations for job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID, page models.Page) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, page models.Page) ([]models.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	EarningsForUser(ctx context.Context, userID uuid.UUID) (*models.Earnings, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository returns a new ApplicationRepository implementation.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, notFoundOrInternal(err, "Application")
	}
	return &app, nil
}

// Exists reports whether applicantID already applied to jobID. Nothing at the
// storage layer prevents two concurrent applications from both passing it.
func (r *applicationRepository) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, page models.Page) ([]models.Application, error) {
	apps := []models.Application{}
	q := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC")
	if err := paginate(q, page).Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

// ListByJob returns the job's applications with a summary of each applicant.
func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, page models.Page) ([]models.ApplicationDetail, error) {
	var apps []models.Application
	q := r.db.WithContext(ctx).
		Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("created_at ASC")
	if err := paginate(q, page).Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	details := make([]models.ApplicationDetail, 0, len(apps))
	for _, app := range apps {
		details = append(details, models.ApplicationDetail{
			Application: app,
			Applicant:   app.Applicant.Summary(),
		})
	}
	return details, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Application")
	}
	return nil
}

// EarningsForUser sums the rewards of userID's completed applications by
// reward type. A missing reward counts as zero.
func (r *applicationRepository) EarningsForUser(ctx context.Context, userID uuid.UUID) (*models.Earnings, error) {
	var earnings models.Earnings
	err := r.db.WithContext(ctx).
		Table("applications").
		Select(`COALESCE(SUM(CASE WHEN jobs.reward_type = ? THEN COALESCE(jobs.reward, 0) ELSE 0 END), 0) AS total_credits,
			COALESCE(SUM(CASE WHEN jobs.reward_type = ? THEN COALESCE(jobs.reward, 0) ELSE 0 END), 0) AS total_cash,
			COUNT(applications.id) AS total_completed_jobs`,
			models.RewardCredits, models.RewardCash).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.applicant_id = ? AND applications.status = ?", userID, models.ApplicationCompleted).
		Scan(&earnings).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &earnings, nil
}
