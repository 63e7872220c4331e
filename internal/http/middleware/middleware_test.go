package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGenerated(t *testing.T) {
	var local string

	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		local, _ = c.Locals(RequestIDLocalKey).(string)
		return c.SendStatus(http.StatusOK)
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

	header := resp.Header.Get(RequestIDHeader)
	require.NotEmpty(t, header)
	assert.Equal(t, header, local)
	_, err := uuid.Parse(header)
	assert.NoError(t, err)
}

func TestRequestIDPreserved(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id-42")

	resp, _ := app.Test(req)

	assert.Equal(t, "upstream-id-42", resp.Header.Get(RequestIDHeader))
}

func TestLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer

	app := fiber.New()
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusTeapot)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/ping", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.NotEmpty(t, line["request_id"])
	assert.GreaterOrEqual(t, line["latency"], float64(0))

	_, err = time.Parse(time.RFC3339Nano, line["ts"].(string))
	assert.NoError(t, err)
}
