package handler

import (
	"github.com/gofiber/fiber/v2"

	"campusapi/internal/http/crud"
	"campusapi/internal/model"
)

// RegisterCollegeRoutes mounts the generated CRUD endpoints for colleges
// under /api/college.
func RegisterCollegeRoutes(r fiber.Router, clients crud.ClientFactory) {
	h := crud.NewHandlers(crud.Resource[model.College, model.CollegeCreate, model.CollegeUpdate]{
		Table:   "colleges",
		Name:    "college",
		Columns: []string{"id", "university_id", "name", "created_at"},
		Scan:    scanCollege,
	}, clients)

	g := r.Group("/college")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Put("/", h.Update)
	g.Delete("/", h.Delete)
}

func scanCollege(row crud.RowScanner) (model.College, error) {
	var col model.College
	err := row.Scan(&col.ID, &col.UniversityID, &col.Name, &col.CreatedAt)
	return col, err
}
