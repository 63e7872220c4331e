package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMap(t *testing.T) {
	type payload struct {
		ID       string  `json:"id" db:"id"`
		Name     *string `json:"name" db:"name"`
		Code     *string `json:"code" db:"code"`
		Credits  int     `json:"credits" db:"credits"`
		Ignored  string  `json:"ignored" db:"-"`
		Untagged string  `json:"untagged"`
	}

	name := "Physics"
	in := payload{
		ID:       "abc",
		Name:     &name,
		Code:     nil,
		Credits:  3,
		Ignored:  "x",
		Untagged: "y",
	}

	got := fieldMap(in)

	assert.Equal(t, map[string]any{
		"id":      "abc",
		"name":    "Physics",
		"credits": 3,
	}, got)
}

func TestFieldMapPointerInput(t *testing.T) {
	type payload struct {
		Name string `db:"name"`
	}

	got := fieldMap(&payload{Name: "a"})
	assert.Equal(t, map[string]any{"name": "a"}, got)

	var nilPayload *payload
	assert.Empty(t, fieldMap(nilPayload))
}
