package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/http/crud"
	"campusapi/internal/http/respond"
	"campusapi/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, snapSvc service.SnapshotService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	clients := crud.PoolClients(db)

	RegisterUniversityRoutes(api, clients)
	RegisterCollegeRoutes(api, clients)
	RegisterDepartmentRoutes(api, clients)
	RegisterCourseRoutes(api, clients)

	api.Post("/snapshots/:resource", ExportSnapshot(snapSvc))
}

// HealthCheck reports readiness: it fails when the database is unreachable.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return respond.Error(c, fiber.StatusServiceUnavailable, respond.CodeServiceUnavailable, "dependency unavailable")
		}
		return respond.Success(c, fiber.StatusOK, fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
