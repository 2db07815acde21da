package service

import (
	"context"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobService struct {
	jobRepo repository.JobRepository
}

type CreateJobInput struct {
	Title          string
	Description    string
	Reward         float64
	RewardType     string
	Department     string
	EstimatedTime  string
	SkillsRequired []string
	IsFeatured     bool
	ImageURL       string
}

// UpdateJobInput is a partial patch; nil fields are left unchanged.
type UpdateJobInput struct {
	Title          *string
	Description    *string
	Reward         *float64
	RewardType     *string
	Department     *string
	EstimatedTime  *string
	SkillsRequired *[]string
	IsFeatured     *bool
	ImageURL       *string
	Status         *string
}

type ListJobsInput struct {
	Department string
	Status     string
	PostedBy   *uuid.UUID
	Page       models.Page
}

func NewJobService(jobRepo repository.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// NewJobSlug derives a URL slug from title: lowercased, spaces replaced by
// hyphens, plus an 8 character random suffix. Collisions are not retried.
func NewJobSlug(title string) string {
	base := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
	return base + "-" + uuid.NewString()[:8]
}

func (s *JobService) CreateJob(ctx context.Context, poster *models.User, in CreateJobInput) (*models.Job, error) {
	ctx, span := observability.StartServiceSpan(ctx, "JobService", "CreateJob")
	var err error
	defer func() { observability.EndSpan(span, err) }()

	if err = validateJobFields(in.Title, in.Description, in.Reward, in.Department, in.EstimatedTime, in.ImageURL); err != nil {
		return nil, err
	}
	rewardType := models.RewardType(strings.ToLower(strings.TrimSpace(in.RewardType)))
	if !rewardType.Valid() {
		err = models.NewBadRequestError("Invalid reward type")
		return nil, err
	}

	job := &models.Job{
		Title:          strings.TrimSpace(in.Title),
		Slug:           NewJobSlug(in.Title),
		Description:    in.Description,
		Reward:         in.Reward,
		RewardType:     rewardType,
		PostedBy:       poster.ID,
		Department:     strings.TrimSpace(in.Department),
		EstimatedTime:  strings.TrimSpace(in.EstimatedTime),
		SkillsRequired: skillsOrEmpty(in.SkillsRequired),
		Status:         models.JobStatusOpen,
		IsFeatured:     in.IsFeatured,
		ImageURL:       strings.TrimSpace(in.ImageURL),
	}
	if err = s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	observability.JobsCreated.WithLabelValues(string(job.RewardType)).Inc()
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, in ListJobsInput) ([]models.Job, error) {
	filter := repository.JobFilter{
		Department: strings.TrimSpace(in.Department),
		PostedBy:   in.PostedBy,
	}
	if strings.TrimSpace(in.Status) != "" {
		status, err := parseJobStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	return s.jobRepo.List(ctx, filter, in.Page)
}

// ListMyJobs lists the jobs posted by poster.
func (s *JobService) ListMyJobs(ctx context.Context, poster *models.User, status string, page models.Page) ([]models.Job, error) {
	return s.ListJobs(ctx, ListJobsInput{Status: status, PostedBy: &poster.ID, Page: page})
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// UpdateJob applies a partial patch. Only the poster or an admin may edit a
// job, and the slug never changes.
func (s *JobService) UpdateJob(ctx context.Context, actor *models.User, id uuid.UUID, in UpdateJobInput) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, models.NewForbiddenError("Not authorized to update this job")
	}

	if in.Title != nil {
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Reward != nil {
		job.Reward = *in.Reward
	}
	if in.Department != nil {
		job.Department = strings.TrimSpace(*in.Department)
	}
	if in.EstimatedTime != nil {
		job.EstimatedTime = strings.TrimSpace(*in.EstimatedTime)
	}
	if in.ImageURL != nil {
		job.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.SkillsRequired != nil {
		job.SkillsRequired = skillsOrEmpty(*in.SkillsRequired)
	}
	if in.IsFeatured != nil {
		job.IsFeatured = *in.IsFeatured
	}
	if in.RewardType != nil {
		rewardType := models.RewardType(strings.ToLower(strings.TrimSpace(*in.RewardType)))
		if !rewardType.Valid() {
			return nil, models.NewBadRequestError("Invalid reward type")
		}
		job.RewardType = rewardType
	}
	if in.Status != nil {
		status, err := parseJobStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		job.Status = status
	}

	if err := validateJobFields(job.Title, job.Description, job.Reward, job.Department, job.EstimatedTime, job.ImageURL); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes a job and its applications. Only the poster or an admin
// may delete it.
func (s *JobService) DeleteJob(ctx context.Context, actor *models.User, id uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !job.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return models.NewForbiddenError("Not authorized to delete this job")
	}
	return s.jobRepo.Delete(ctx, id)
}

// SetJobStatus is the admin override for a job's status.
func (s *JobService) SetJobStatus(ctx context.Context, id uuid.UUID, status string) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	parsed, err := parseJobStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.jobRepo.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, err
	}
	job.Status = parsed
	return job, nil
}

func parseJobStatus(raw string) (models.JobStatus, error) {
	status := models.JobStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", models.NewBadRequestError("Invalid status")
	}
	return status, nil
}

func validateJobFields(title, description string, reward float64, department, estimatedTime, imageURL string) error {
	checks := []error{
		validation.ValidateTitle(title),
		validation.Required("description", description),
		validation.ValidateReward(reward),
		validation.ValidateDepartment(department),
		validation.MaxLength("estimated_time", estimatedTime, validation.MaxEstimatedTimeLength),
		validation.ValidateImageURL(imageURL),
	}
	for _, err := range checks {
		if err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

func skillsOrEmpty(skills []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
