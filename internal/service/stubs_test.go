package service

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uuid.UUID) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateRoleFn    func(context.Context, uuid.UUID, models.Role) error
	deleteFn        func(context.Context, uuid.UUID) error
	listFn          func(context.Context, repository.UserFilter, models.Page) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	return s.updateRoleFn(ctx, id, role)
}
func (s *userRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, f repository.UserFilter, p models.Page) ([]models.User, error) {
	return s.listFn(ctx, f, p)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uuid.UUID) (*models.User, error) { return nil, models.NewNotFoundError("User") },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateRoleFn:    func(context.Context, uuid.UUID, models.Role) error { return nil },
		deleteFn:        func(context.Context, uuid.UUID) error { return nil },
		listFn: func(context.Context, repository.UserFilter, models.Page) ([]models.User, error) {
			return []models.User{}, nil
		},
	}
}

// jobRepoStub keeps jobs in a map.
type jobRepoStub struct {
	jobs    map[uuid.UUID]*models.Job
	created []*models.Job
	deleted []uuid.UUID
	listFn  func(context.Context, repository.JobFilter, models.Page) ([]models.Job, error)
}

func newJobRepoStub(jobs ...*models.Job) *jobRepoStub {
	s := &jobRepoStub{jobs: map[uuid.UUID]*models.Job{}}
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	return s
}

func (s *jobRepoStub) Create(_ context.Context, job *models.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	s.jobs[job.ID] = job
	s.created = append(s.created, job)
	return nil
}
func (s *jobRepoStub) GetByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, models.NewNotFoundError("Job")
	}
	cp := *job
	return &cp, nil
}
func (s *jobRepoStub) List(ctx context.Context, f repository.JobFilter, p models.Page) ([]models.Job, error) {
	if s.listFn != nil {
		return s.listFn(ctx, f, p)
	}
	return []models.Job{}, nil
}
func (s *jobRepoStub) Update(_ context.Context, job *models.Job) error {
	if _, ok := s.jobs[job.ID]; !ok {
		return models.NewNotFoundError("Job")
	}
	cp := *job
	cp.Slug = s.jobs[job.ID].Slug
	s.jobs[job.ID] = &cp
	return nil
}
func (s *jobRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status models.JobStatus) error {
	job, ok := s.jobs[id]
	if !ok {
		return models.NewNotFoundError("Job")
	}
	job.Status = status
	return nil
}
func (s *jobRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.jobs[id]; !ok {
		return models.NewNotFoundError("Job")
	}
	delete(s.jobs, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type appRepoStub struct {
	apps       map[uuid.UUID]*models.Application
	existsFn   func(jobID, applicantID uuid.UUID) bool
	earningsFn func(uuid.UUID) (*models.Earnings, error)
}

func newAppRepoStub(apps ...*models.Application) *appRepoStub {
	s := &appRepoStub{apps: map[uuid.UUID]*models.Application{}}
	for _, a := range apps {
		s.apps[a.ID] = a
	}
	return s
}

func (s *appRepoStub) Create(_ context.Context, app *models.Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	s.apps[app.ID] = app
	return nil
}
func (s *appRepoStub) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	app, ok := s.apps[id]
	if !ok {
		return nil, models.NewNotFoundError("Application")
	}
	cp := *app
	return &cp, nil
}
func (s *appRepoStub) Exists(_ context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(jobID, applicantID), nil
	}
	for _, a := range s.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}
func (s *appRepoStub) ListByApplicant(_ context.Context, applicantID uuid.UUID, _ models.Page) ([]models.Application, error) {
	out := []models.Application{}
	for _, a := range s.apps {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}
func (s *appRepoStub) ListByJob(_ context.Context, jobID uuid.UUID, _ models.Page) ([]models.ApplicationDetail, error) {
	out := []models.ApplicationDetail{}
	for _, a := range s.apps {
		if a.JobID == jobID {
			out = append(out, models.ApplicationDetail{Application: *a})
		}
	}
	return out, nil
}
func (s *appRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	app, ok := s.apps[id]
	if !ok {
		return models.NewNotFoundError("Application")
	}
	app.Status = status
	return nil
}
func (s *appRepoStub) EarningsForUser(_ context.Context, userID uuid.UUID) (*models.Earnings, error) {
	if s.earningsFn != nil {
		return s.earningsFn(userID)
	}
	return &models.Earnings{}, nil
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, "message: %s", appErr.Message)
}

func newUser(role models.Role) *models.User {
	return &models.User{ID: uuid.New(), Username: string(role) + "-user", Role: role}
}
