package repository

import (
	"context"

	"jobboard/internal/cache"
	"jobboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseStudyRepository defines persistence operations for case studies.
type CaseStudyRepository interface {
	Create(ctx context.Context, cs *models.CaseStudy) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CaseStudy, error)
	List(ctx context.Context, page models.Page) ([]models.CaseStudy, error)
}

type caseStudyRepository struct {
	db *gorm.DB
}

// NewCaseStudyRepository returns a new CaseStudyRepository implementation.
func NewCaseStudyRepository(db *gorm.DB) CaseStudyRepository {
	return &caseStudyRepository{db: db}
}

func (r *caseStudyRepository) Create(ctx context.Context, cs *models.CaseStudy) error {
	if err := r.db.WithContext(ctx).Create(cs).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *caseStudyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CaseStudy, error) {
	var cs models.CaseStudy
	err := cache.Aside(ctx, cache.CaseStudyKey(id), &cs, cache.CaseStudyTTL, func() error {
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cs).Error; err != nil {
			return notFoundOrInternal(err, "Case study")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *caseStudyRepository) List(ctx context.Context, page models.Page) ([]models.CaseStudy, error) {
	items := []models.CaseStudy{}
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if err := paginate(q, page).Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}
