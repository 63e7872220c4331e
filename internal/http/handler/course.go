package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/http/crud"
	"campusapi/internal/model"
)

// RegisterCourseRoutes mounts the generated CRUD endpoints for courses
// under /api/course. Courses order by code so catalog listings read
// naturally; the other resources keep the created_at default.
func RegisterCourseRoutes(r fiber.Router, clients crud.ClientFactory) {
	h := crud.NewHandlers(crud.Resource[model.Course, model.CourseCreate, model.CourseUpdate]{
		Table:   "courses",
		Name:    "course",
		Columns: []string{"id", "department_id", "code", "title", "description", "credits", "created_at"},
		OrderBy: "code ASC",
		Scan:    scanCourse,
		BeforeInsert: func(in model.CourseCreate) model.CourseCreate {
			in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
			return in
		},
	}, clients)

	g := r.Group("/course")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Put("/", h.Update)
	g.Delete("/", h.Delete)
}

func scanCourse(row crud.RowScanner) (model.Course, error) {
	var cr model.Course
	err := row.Scan(&cr.ID, &cr.DepartmentID, &cr.Code, &cr.Title, &cr.Description, &cr.Credits, &cr.CreatedAt)
	return cr, err
}
