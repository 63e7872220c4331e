package model

import "time"

// University is a top-level catalog entity. Models in this package are pure
// domain types; `db` tags on the payload structs drive column mapping, and
// `validate` tags drive payload validation.
type University struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	Website      string    `json:"website"`
	CreatedAt    time.Time `json:"created_at"`
}

// UniversityCreate is the POST payload.
type UniversityCreate struct {
	Name         string `json:"name" db:"name" validate:"required,min=2,max=200"`
	Abbreviation string `json:"abbreviation" db:"abbreviation" validate:"omitempty,max=16"`
	Website      string `json:"website" db:"website" validate:"omitempty,url"`
}

// UniversityUpdate is the PUT payload; nil fields are left untouched.
type UniversityUpdate struct {
	ID           string  `json:"id" db:"id" validate:"required,uuid4"`
	Name         *string `json:"name" db:"name" validate:"omitempty,min=2,max=200"`
	Abbreviation *string `json:"abbreviation" db:"abbreviation" validate:"omitempty,max=16"`
	Website      *string `json:"website" db:"website" validate:"omitempty,url"`
}
