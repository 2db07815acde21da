package server

import (
	"errors"
	"strconv"
	"strings"

	"jobboard/internal/middleware"
	"jobboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePagination reads skip and limit query parameters. Non-integer values
// write a 422 response and return errResponseWritten.
func parsePagination(c *fiber.Ctx) (models.Page, error) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return models.Page{}, err
	}
	limit, err := queryInt(c, "limit", models.DefaultPageLimit)
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Skip: skip, Limit: limit}.Normalize(), nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError(key+" must be an integer"))
		return 0, errResponseWritten
	}
	return v, nil
}

// parseUUIDParam extracts a route parameter as a UUID. Identifiers that cannot
// name any row are reported as a missing resource.
func parseUUIDParam(c *fiber.Ctx, param, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError(resource))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// parseBody decodes the request body into dst, writing a 422 on failure.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// mustUser returns the caller set by the Authenticate middleware.
func mustUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not authenticated"))
		return nil, errResponseWritten
	}
	return user, nil
}

// statusForError maps an AppError code onto its HTTP status.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusUnprocessableEntity
	case models.CodeBadRequest:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err using the status its code maps to. Errors that are
// not AppErrors are logged and reported as internal errors.
func respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	switch status {
	case fiber.StatusInternalServerError:
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"path", c.Path(), "error", err)
		if !models.HasCode(err, models.CodeInternal) {
			err = models.NewInternalError(err)
		}
	case fiber.StatusUnauthorized:
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return models.RespondWithError(c, status, err)
}

func messageResponse(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"message": message})
}
