package server

import (
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type caseStudyRequest struct {
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Problem         string   `json:"problem"`
	Solution        string   `json:"solution"`
	TimeToDeliver   int      `json:"time_to_deliver"`
	DifficultyLevel string   `json:"difficulty_level"`
	Tags            []string `json:"tags"`
	ImageURL        string   `json:"image_url"`
}

type reviewRequest struct {
	JobID   *string `json:"job_id"`
	Rating  int     `json:"rating"`
	Comment string  `json:"comment"`
}

// ListCaseStudies handles GET /case-studies
// @Summary List case studies
// @Tags case-studies
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {array} models.CaseStudy
// @Router /case-studies/ [get]
func (s *Server) ListCaseStudies(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	items, err := s.caseStudyService.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GetCaseStudy handles GET /case-studies/:id
// @Summary Get a case study
// @Tags case-studies
// @Produce json
// @Param id path string true "Case study ID"
// @Success 200 {object} models.CaseStudy
// @Failure 404 {object} models.ErrorResponse
// @Router /case-studies/{id} [get]
func (s *Server) GetCaseStudy(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Case study")
	if err != nil {
		return nil
	}

	cs, err := s.caseStudyService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cs)
}

// CreateCaseStudy handles POST /case-studies
// @Summary Publish a case study
// @Tags case-studies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body caseStudyRequest true "Case study"
// @Success 200 {object} models.CaseStudy
// @Failure 403 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /case-studies/ [post]
func (s *Server) CreateCaseStudy(c *fiber.Ctx) error {
	var req caseStudyRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	cs, err := s.caseStudyService.Create(c.UserContext(), service.CreateCaseStudyInput{
		Title:           req.Title,
		Category:        req.Category,
		Problem:         req.Problem,
		Solution:        req.Solution,
		TimeToDeliver:   req.TimeToDeliver,
		DifficultyLevel: req.DifficultyLevel,
		Tags:            req.Tags,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cs)
}

// ListReviews handles GET /reviews
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Param job_id query string false "Only reviews about this job"
// @Success 200 {array} models.Review
// @Failure 422 {object} models.ErrorResponse
// @Router /reviews/ [get]
func (s *Server) ListReviews(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return nil
	}

	var jobID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("job_id")); raw != "" {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return respondError(c, models.NewValidationError("Invalid job_id"))
		}
		jobID = &id
	}

	reviews, err := s.reviewService.List(c.UserContext(), jobID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// CreateReview handles POST /reviews
// @Summary Leave a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reviewRequest true "Review"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /reviews/ [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	var req reviewRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	in := service.CreateReviewInput{Rating: req.Rating, Comment: req.Comment}
	if req.JobID != nil && strings.TrimSpace(*req.JobID) != "" {
		id, parseErr := uuid.Parse(strings.TrimSpace(*req.JobID))
		if parseErr != nil {
			return respondError(c, models.NewValidationError("Invalid job_id"))
		}
		in.JobID = &id
	}

	review, err := s.reviewService.Create(c.UserContext(), user, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}
