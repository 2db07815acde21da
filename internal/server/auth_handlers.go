package server

import (
	"jobboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Username   string `json:"username" form:"username"`
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	Role       string `json:"role" form:"role"`
	Department string `json:"department" form:"department"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type roleRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Signup handles POST /auth/signup
// @Summary User signup
// @Description Register a new poster, doer or admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body signupRequest true "Signup request"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.authService.Signup(c.UserContext(), service.SignupInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Login handles POST /auth/login
// @Summary User login
// @Description Exchange form-encoded credentials for a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} service.LoginResult
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetCurrentUser handles GET /auth/user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/user [get]
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := mustUser(c)
	if err != nil {
		return nil
	}
	return c.JSON(user)
}

// PromoteUser handles PUT /auth/promote/:username. The body may name a
// different target than the path; the body wins when present.
// @Summary Change a user's role
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param request body roleRequest true "Target and role"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/promote/{username} [put]
func (s *Server) PromoteUser(c *fiber.Ctx) error {
	var req roleRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	username := req.Username
	if username == "" {
		username = c.Params("username")
	}

	user, err := s.userService.UpdateRole(c.UserContext(), username, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
