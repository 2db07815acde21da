package server

import (
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createJobRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Reward         float64  `json:"reward"`
	RewardType     string   `json:"reward_type"`
	Department     string   `json:"department"`
	EstimatedTime  string   `json:"estimated_time"`
	SkillsRequired []string `json:"skills_required"`
	IsFeatured     bool     `json:"is_featured"`
	ImageURL       string   `json:"image_url"`
}

// updateJobRequest uses pointers so absent fields are left unchanged.
type updateJobRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Reward         *float64  `json:"reward"`
	RewardType     *string   `json:"reward_type"`
	Department     *string   `json:"department"`
	EstimatedTime  *string   `json:"estimated_time"`
	SkillsRequired *[]string `json:"skills_required"`
	IsFeatured     *bool     `json:"is_featured"`
	ImageURL       *string   `json:"image_url"`
	Status         *string   `json:"status"`
}

// ListJobs handles GET /jobs
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param department query string false "Department"
// @Param status query string false "open, in_progress or completed"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {array} models.Job
// @Router /jobs/ [get]
func (s *Server) ListJobs(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	jobs, err := s.jobService.ListJobs(c.UserContext(), service.ListJobsInput{
		Department: c.Query("department"),
		Status:     c.Query("status"),
		Page:       page,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobs)
}

// CreateJob handles POST /jobs
// @Summary Post a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createJobRequest true "Job"
// @Success 200 {object} models.Job
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /jobs/ [post]
func (s *Server) CreateJob(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	var req createJobRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	job, err := s.jobService.CreateJob(c.UserContext(), user, service.CreateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Reward:         req.Reward,
		RewardType:     req.RewardType,
		Department:     req.Department,
		EstimatedTime:  req.EstimatedTime,
		SkillsRequired: req.SkillsRequired,
		IsFeatured:     req.IsFeatured,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// ListMyJobs handles GET /jobs/my-jobs
// @Summary Jobs posted by the caller
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} models.Job
// @Router /jobs/my-jobs [get]
func (s *Server) ListMyJobs(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	jobs, err := s.jobService.ListMyJobs(c.UserContext(), user, c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobs)
}

// GetJob handles GET /jobs/:id
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.Job
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id} [get]
func (s *Server) GetJob(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Job")
	if err != nil {
		return nil
	}

	job, err := s.jobService.GetJob(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// UpdateJob handles PUT /jobs/:id
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body updateJobRequest true "Fields to change"
// @Success 200 {object} models.Job
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id} [put]
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	id, err := parseUUIDParam(c, "id", "Job")
	if err != nil {
		return nil
	}
	var req updateJobRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	job, err := s.jobService.UpdateJob(c.UserContext(), user, id, service.UpdateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Reward:         req.Reward,
		RewardType:     req.RewardType,
		Department:     req.Department,
		EstimatedTime:  req.EstimatedTime,
		SkillsRequired: req.SkillsRequired,
		IsFeatured:     req.IsFeatured,
		ImageURL:       req.ImageURL,
		Status:         req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// DeleteJob handles DELETE /jobs/:id
// @Summary Delete a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /jobs/{id} [delete]
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	id, err := parseUUIDParam(c, "id", "Job")
	if err != nil {
		return nil
	}

	if err := s.jobService.DeleteJob(c.UserContext(), user, id); err != nil {
		return respondError(c, err)
	}
	return messageResponse(c, "Job deleted successfully")
}
