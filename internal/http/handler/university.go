package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/http/crud"
	"campusapi/internal/model"
)

// RegisterUniversityRoutes mounts the generated CRUD endpoints for
// universities under /api/university.
func RegisterUniversityRoutes(r fiber.Router, clients crud.ClientFactory) {
	h := crud.NewHandlers(crud.Resource[model.University, model.UniversityCreate, model.UniversityUpdate]{
		Table:   "universities",
		Name:    "university",
		Columns: []string{"id", "name", "abbreviation", "website", "created_at"},
		Scan:    scanUniversity,
		BeforeInsert: func(in model.UniversityCreate) model.UniversityCreate {
			in.Abbreviation = strings.ToUpper(strings.TrimSpace(in.Abbreviation))
			return in
		},
	}, clients)

	g := r.Group("/university")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Put("/", h.Update)
	g.Delete("/", h.Delete)
}

func scanUniversity(row crud.RowScanner) (model.University, error) {
	var u model.University
	err := row.Scan(&u.ID, &u.Name, &u.Abbreviation, &u.Website, &u.CreatedAt)
	return u, err
}
