package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, err := parsePagination(c)
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"skip": page.Skip, "limit": page.Limit})
	})

	tests := []struct {
		name      string
		query     string
		status    int
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "", http.StatusOK, 0, 100},
		{"explicit", "?skip=20&limit=10", http.StatusOK, 20, 10},
		{"limit capped", "?limit=1000", http.StatusOK, 0, 100},
		{"negative skip clamped", "?skip=-5", http.StatusOK, 0, 100},
		{"zero limit uses default", "?limit=0", http.StatusOK, 0, 100},
		{"non-integer skip", "?skip=abc", http.StatusUnprocessableEntity, 0, 0},
		{"non-integer limit", "?limit=ten", http.StatusUnprocessableEntity, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				return
			}

			var body map[string]int
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantSkip, body["skip"])
			assert.Equal(t, tt.wantLimit, body["limit"])
		})
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.NewNotFoundError("Job"), http.StatusNotFound},
		{models.NewValidationError("bad"), http.StatusUnprocessableEntity},
		{models.NewBadRequestError("Already applied"), http.StatusBadRequest},
		{models.NewUnauthorizedError("nope"), http.StatusUnauthorized},
		{models.NewForbiddenError("Not authorized"), http.StatusForbidden},
		{models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("pq: connection refused"))
	})
	app.Get("/unauthorized", func(c *fiber.Ctx) error {
		return respondError(c, models.NewUnauthorizedError("Incorrect username or password"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.Equal(t, models.CodeInternal, body.Code)
	assert.Empty(t, body.Details)

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/unauthorized", nil))
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
	assert.Equal(t, "Bearer", resp2.Header.Get("WWW-Authenticate"))
}
