package model

import "time"

// Department belongs to a college; its code is unique within the college.
type Department struct {
	ID        string    `json:"id"`
	CollegeID string    `json:"college_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

type DepartmentCreate struct {
	CollegeID string `json:"college_id" db:"college_id" validate:"required,uuid4"`
	Name      string `json:"name" db:"name" validate:"required,min=2,max=200"`
	Code      string `json:"code" db:"code" validate:"required,min=2,max=16"`
}

type DepartmentUpdate struct {
	ID        string  `json:"id" db:"id" validate:"required,uuid4"`
	CollegeID *string `json:"college_id" db:"college_id" validate:"omitempty,uuid4"`
	Name      *string `json:"name" db:"name" validate:"omitempty,min=2,max=200"`
	Code      *string `json:"code" db:"code" validate:"omitempty,min=2,max=16"`
}
