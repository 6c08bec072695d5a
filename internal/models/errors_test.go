package models

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(NewNotFoundError("Video", 3)))
	assert.Equal(t, http.StatusBadRequest, StatusFor(NewValidationError("bad")))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(NewUnauthorizedError("who")))
	assert.Equal(t, http.StatusForbidden, StatusFor(NewForbiddenError("no")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
	assert.Equal(t, http.StatusBadRequest, StatusFor(fmt.Errorf("wrapped: %w", NewValidationError("bad"))))
}

func TestRespondWithError_HidesInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError, NewInternalError(errors.New("dial tcp 10.0.0.1:5432")))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "10.0.0.1")
	assert.Contains(t, string(body), "Internal server error")
}

func TestRespondWithError_ItemizedFields(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusBadRequest, NewFieldValidationError([]FieldError{
			{Path: "title", Message: "title is required"},
			{Path: "eventDate", Message: "eventDate must be a valid date/time"},
		}))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"path":"title"`)
	assert.Contains(t, string(body), `"path":"eventDate"`)
}
