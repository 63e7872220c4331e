package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campusapi/internal/http/respond"
	"campusapi/internal/service"
	"campusapi/internal/service/mocks"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		app := fiber.New()
		app.Get("/health", HealthCheck(db))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), "healthy")
	})

	t.Run("database unreachable", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		app := fiber.New()
		app.Get("/health", HealthCheck(db))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.False(t, env.Success)
		assert.Equal(t, "SERVICE_UNAVAILABLE", env.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExportSnapshot(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mocks.MockSnapshotService)
		svc.On("Export", mock.Anything, "course").Return(&service.Snapshot{
			Resource:  "course",
			Key:       "snapshots/courses/abc.json",
			Rows:      12,
			URL:       "https://minio.local/presigned",
			CreatedAt: time.Now().UTC(),
		}, nil)

		app := fiber.New()
		app.Post("/api/snapshots/:resource", ExportSnapshot(svc))

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/api/snapshots/course", nil))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), "snapshots/courses/abc.json")
		svc.AssertExpectations(t)
	})

	t.Run("unknown resource", func(t *testing.T) {
		svc := new(mocks.MockSnapshotService)
		svc.On("Export", mock.Anything, "widgets").Return(nil, service.ErrUnknownResource)

		app := fiber.New()
		app.Post("/api/snapshots/:resource", ExportSnapshot(svc))

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/api/snapshots/widgets", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	})

	t.Run("export failure", func(t *testing.T) {
		svc := new(mocks.MockSnapshotService)
		svc.On("Export", mock.Anything, "course").Return(nil, errors.New("bucket gone"))

		app := fiber.New()
		app.Post("/api/snapshots/:resource", ExportSnapshot(svc))

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/api/snapshots/course", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", env.Error.Code)
		assert.NotContains(t, env.Error.Message, "bucket gone")
	})
}

func TestRegisterRoutes(t *testing.T) {
	db, dbmock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New(fiber.Config{ErrorHandler: respond.ErrorHandler()})
	RegisterRoutes(app, db, new(mocks.MockSnapshotService))

	t.Run("resource collections are mounted", func(t *testing.T) {
		for _, path := range []string{"/api/university", "/api/college", "/api/department", "/api/course"} {
			dbmock.ExpectQuery(`SELECT COUNT\(\*\) FROM`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			dbmock.ExpectQuery(`SELECT .+ FROM`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.False(t, env.Success)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPatch, "/api/course", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	})
}
