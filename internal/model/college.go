package model

import "time"

// College belongs to a university.
type College struct {
	ID           string    `json:"id"`
	UniversityID string    `json:"university_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

type CollegeCreate struct {
	UniversityID string `json:"university_id" db:"university_id" validate:"required,uuid4"`
	Name         string `json:"name" db:"name" validate:"required,min=2,max=200"`
}

type CollegeUpdate struct {
	ID           string  `json:"id" db:"id" validate:"required,uuid4"`
	UniversityID *string `json:"university_id" db:"university_id" validate:"omitempty,uuid4"`
	Name         *string `json:"name" db:"name" validate:"omitempty,min=2,max=200"`
}
