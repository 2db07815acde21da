package server

import (
	"jobboard/internal/middleware"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers handles GET /admin/users
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "poster, doer or admin"
// @Success 200 {array} models.User
// @Router /admin/users [get]
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	users, err := s.userService.ListUsers(c.UserContext(), c.Query("role"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// AdminDeleteUser handles DELETE /admin/users/:id
// @Summary Delete a user and everything they own
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	id, err := parseUUIDParam(c, "id", "User")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.UserContext(), user, id); err != nil {
		return respondError(c, err)
	}
	return messageResponse(c, "User deleted successfully")
}

// AdminUpdateUserRole handles PUT /admin/users/:username/role
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param request body object{role=string} true "New role"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{username}/role [put]
func (s *Server) AdminUpdateUserRole(c *fiber.Ctx) error {
	var req roleRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateRole(c.UserContext(), c.Params("username"), req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// AdminListJobs handles GET /admin/jobs
// @Summary List every job
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} models.Job
// @Router /admin/jobs [get]
func (s *Server) AdminListJobs(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	jobs, err := s.jobService.ListJobs(c.UserContext(), service.ListJobsInput{
		Status: c.Query("status"),
		Page:   page,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobs)
}

// AdminDeleteJob handles DELETE /admin/jobs/:id
// @Summary Delete any job
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/jobs/{id} [delete]
func (s *Server) AdminDeleteJob(c *fiber.Ctx) error {
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

// AdminSetJobStatus handles PUT /admin/jobs/:id/status
// @Summary Override a job's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body statusRequest true "New status"
// @Success 200 {object} object{message=string,job=models.Job}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/jobs/{id}/status [put]
func (s *Server) AdminSetJobStatus(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Job")
	if err != nil {
		return nil
	}
	var req statusRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	job, err := s.jobService.SetJobStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Job status updated", "job": job})
}

// GetFeatureFlags returns configured feature flags and their evaluated state
// for the calling admin.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	var subject string
	if user, ok := middleware.CurrentUser(c); ok {
		subject = user.ID.String()
	}

	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(subject),
	})
}
