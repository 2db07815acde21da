package service

import (
	"context"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type ApplicationService struct {
	appRepo repository.ApplicationRepository
	jobRepo repository.JobRepository
}

type ApplyInput struct {
	JobID         uuid.UUID
	SubmittedWork string
}

func NewApplicationService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository) *ApplicationService {
	return &ApplicationService{appRepo: appRepo, jobRepo: jobRepo}
}

// Apply records actor's application to an open job. The duplicate check and
// the insert are not atomic.
func (s *ApplicationService) Apply(ctx context.Context, actor *models.User, in ApplyInput) (*models.Application, error) {
	ctx, span := observability.StartServiceSpan(ctx, "ApplicationService", "Apply")
	var err error
	defer func() { observability.EndSpan(span, err) }()

	job, getErr := s.jobRepo.GetByID(ctx, in.JobID)
	if getErr != nil && !models.HasCode(getErr, models.CodeNotFound) {
		err = getErr
		return nil, err
	}
	if job == nil || job.Status != models.JobStatusOpen {
		err = models.NewBadRequestError("Job not available")
		return nil, err
	}

	exists, err := s.appRepo.Exists(ctx, in.JobID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		err = models.NewBadRequestError("Already applied")
		return nil, err
	}

	app := &models.Application{
		JobID:         in.JobID,
		ApplicantID:   actor.ID,
		Status:        models.ApplicationPending,
		SubmittedWork: in.SubmittedWork,
	}
	if err = s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	observability.ApplicationsSubmitted.Inc()
	return app, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, actor *models.User, page models.Page) ([]models.Application, error) {
	return s.appRepo.ListByApplicant(ctx, actor.ID, page)
}

// ListForJob returns a job's applications with applicant details. Only the
// job's poster or an admin may see them; a missing job is reported the same
// way as a foreign one.
func (s *ApplicationService) ListForJob(ctx context.Context, actor *models.User, jobID uuid.UUID, page models.Page) ([]models.ApplicationDetail, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil && !models.HasCode(err, models.CodeNotFound) {
		return nil, err
	}
	if job == nil || (!job.OwnedBy(actor.ID) && !actor.IsAdmin()) {
		return nil, models.NewForbiddenError("Not authorized")
	}
	return s.appRepo.ListByJob(ctx, jobID, page)
}

// UpdateStatus lets the job's poster (or an admin) move an application to any
// known status.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *models.User, appID uuid.UUID, status string) (*models.Application, error) {
	raw := strings.TrimSpace(status)
	if raw == "" {
		return nil, models.NewBadRequestError("Status required")
	}
	parsed := models.ApplicationStatus(strings.ToLower(raw))
	if !parsed.Valid() {
		return nil, models.NewBadRequestError("Invalid status")
	}

	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Not authorized")
	}

	if err := s.appRepo.UpdateStatus(ctx, appID, parsed); err != nil {
		return nil, err
	}
	observability.ApplicationStatusChanges.WithLabelValues(string(parsed)).Inc()

	app.Status = parsed
	return app, nil
}

// Earnings totals the rewards of actor's completed applications.
func (s *ApplicationService) Earnings(ctx context.Context, actor *models.User) (*models.Earnings, error) {
	ctx, span := observability.StartServiceSpan(ctx, "ApplicationService", "Earnings")
	earnings, err := s.appRepo.EarningsForUser(ctx, actor.ID)
	observability.EndSpan(span, err)
	return earnings, err
}
