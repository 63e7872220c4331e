package model

import "time"

// Course belongs to a department; its code is unique within the department.
type Course struct {
	ID           string    `json:"id"`
	DepartmentID string    `json:"department_id"`
	Code         string    `json:"code"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Credits      int       `json:"credits"`
	CreatedAt    time.Time `json:"created_at"`
}

type CourseCreate struct {
	DepartmentID string `json:"department_id" db:"department_id" validate:"required,uuid4"`
	Code         string `json:"code" db:"code" validate:"required,min=2,max=16"`
	Title        string `json:"title" db:"title" validate:"required,min=2,max=200"`
	Description  string `json:"description" db:"description" validate:"omitempty,max=2000"`
	Credits      int    `json:"credits" db:"credits" validate:"required,min=1,max=30"`
}

type CourseUpdate struct {
	ID           string  `json:"id" db:"id" validate:"required,uuid4"`
	DepartmentID *string `json:"department_id" db:"department_id" validate:"omitempty,uuid4"`
	Code         *string `json:"code" db:"code" validate:"omitempty,min=2,max=16"`
	Title        *string `json:"title" db:"title" validate:"omitempty,min=2,max=200"`
	Description  *string `json:"description" db:"description" validate:"omitempty,max=2000"`
	Credits      *int    `json:"credits" db:"credits" validate:"omitempty,min=1,max=30"`
}
