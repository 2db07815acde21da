package server

import (
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type applyRequest struct {
	JobID         string `json:"job_id"`
	SubmittedWork string `json:"submitted_work"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// Apply handles POST /applications
// @Summary Apply to a job
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body applyRequest true "Application"
// @Success 200 {object} models.Application
// @Failure 400 {object} models.ErrorResponse
// @Router /applications/ [post]
func (s *Server) Apply(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	var req applyRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if strings.TrimSpace(req.JobID) == "" {
		return respondError(c, models.NewValidationError("job_id is required"))
	}

	// An unparseable id cannot match a job, so it falls through to "Job not available".
	jobID, _ := uuid.Parse(strings.TrimSpace(req.JobID))

	app, err := s.applicationService.Apply(c.UserContext(), user, service.ApplyInput{
		JobID:         jobID,
		SubmittedWork: req.SubmittedWork,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(app)
}

// ListMyApplications handles GET /applications/my
// @Summary Caller's applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Application
// @Router /applications/my [get]
func (s *Server) ListMyApplications(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	apps, err := s.applicationService.ListMine(c.UserContext(), user, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(apps)
}

// ListJobApplications handles GET /applications/job/:job_id
// @Summary Applications for one of the caller's jobs
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "Job ID"
// @Success 200 {array} models.ApplicationDetail
// @Failure 403 {object} models.ErrorResponse
// @Router /applications/job/{job_id} [get]
func (s *Server) ListJobApplications(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	// Unknown jobs are reported like foreign ones.
	jobID, parseErr := uuid.Parse(c.Params("job_id"))
	if parseErr != nil {
		return respondError(c, models.NewForbiddenError("Not authorized"))
	}

	apps, err := s.applicationService.ListForJob(c.UserContext(), user, jobID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(apps)
}

// UpdateApplicationStatus handles PUT /applications/:id/status
// @Summary Move an application to a new status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body statusRequest true "New status"
// @Success 200 {object} models.Application
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /applications/{id}/status [put]
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	var req statusRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if strings.TrimSpace(req.Status) == "" {
		return respondError(c, models.NewBadRequestError("Status required"))
	}
	id, err := parseUUIDParam(c, "id", "Application")
	if err != nil {
		return nil
	}

	app, err := s.applicationService.UpdateStatus(c.UserContext(), user, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(app)
}

// GetMyEarnings handles GET /applications/earnings/my
// @Summary Caller's earnings from completed applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Earnings
// @Router /applications/earnings/my [get]
func (s *Server) GetMyEarnings(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}

	earnings, err := s.applicationService.Earnings(c.UserContext(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(earnings)
}
