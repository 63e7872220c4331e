package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/http/crud"
	"campusapi/internal/model"
)

// RegisterDepartmentRoutes mounts the generated CRUD endpoints for
// departments under /api/department.
func RegisterDepartmentRoutes(r fiber.Router, clients crud.ClientFactory) {
	h := crud.NewHandlers(crud.Resource[model.Department, model.DepartmentCreate, model.DepartmentUpdate]{
		Table:   "departments",
		Name:    "department",
		Columns: []string{"id", "college_id", "name", "code", "created_at"},
		Scan:    scanDepartment,
		BeforeInsert: func(in model.DepartmentCreate) model.DepartmentCreate {
			in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
			return in
		},
	}, clients)

	g := r.Group("/department")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Put("/", h.Update)
	g.Delete("/", h.Delete)
}

func scanDepartment(row crud.RowScanner) (model.Department, error) {
	var d model.Department
	err := row.Scan(&d.ID, &d.CollegeID, &d.Name, &d.Code, &d.CreatedAt)
	return d, err
}
