package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/http/respond"
	"campusapi/internal/service"
)

// ExportSnapshot dumps one catalog resource to object storage and returns
// the object key plus a time-limited download URL.
func ExportSnapshot(svc service.SnapshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Export(c.UserContext(), c.Params("resource"))
		if err != nil {
			if errors.Is(err, service.ErrUnknownResource) {
				return respond.Error(c, fiber.StatusBadRequest, respond.CodeBadRequest, "unknown resource")
			}
			return respond.Error(c, fiber.StatusInternalServerError, respond.CodeInternal, "internal server error")
		}
		return respond.Success(c, fiber.StatusCreated, snap)
	}
}
