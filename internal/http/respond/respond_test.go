package respond

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHandler(t *testing.T, h fiber.Handler) (int, string) {
	t.Helper()

	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := runHandler(t, func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusCreated, fiber.Map{"id": "abc"})
	})

	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"success":true,"data":{"id":"abc"}}`, body)
}

func TestPageEnvelope(t *testing.T) {
	status, body := runHandler(t, func(c *fiber.Ctx) error {
		return Page(c, []string{"a", "b"}, Pagination{Page: 1, PageSize: 2, Total: 5, TotalPages: 3})
	})

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"success": true,
		"data": ["a","b"],
		"pagination": {"page":1,"pageSize":2,"total":5,"totalPages":3}
	}`, body)
}

func TestErrorEnvelope(t *testing.T) {
	status, body := runHandler(t, func(c *fiber.Ctx) error {
		return Error(c, fiber.StatusNotFound, CodeNotFound, "course not found")
	})

	assert.Equal(t, http.StatusNotFound, status)
	// Details is always present, defaulting to an empty object.
	assert.JSONEq(t, `{
		"success": false,
		"error": {"code":"NOT_FOUND","message":"course not found","details":{}}
	}`, body)
}

func TestErrorDetailsNilNormalized(t *testing.T) {
	_, body := runHandler(t, func(c *fiber.Ctx) error {
		return ErrorDetails(c, fiber.StatusUnprocessableEntity, CodeValidationError, "invalid payload", nil)
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	errObj := got["error"].(map[string]any)
	assert.Equal(t, map[string]any{}, errObj["details"])
}
