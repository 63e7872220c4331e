package crud

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageQuery holds normalized page/pageSize pagination parameters.
type PageQuery struct {
	Page     int
	PageSize int
}

// ParsePageQuery reads page and pageSize from the query string. Missing or
// non-numeric values fall back to the defaults (1, 10); values below 1 do
// too, and pageSize is capped at MaxPageSize so a single request cannot ask
// for an unbounded range.
func ParsePageQuery(c *fiber.Ctx) PageQuery {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	size, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageQuery{Page: page, PageSize: size}
}

// Offset is the number of rows preceding the requested page.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Limit is the maximum number of rows on the requested page.
func (q PageQuery) Limit() int {
	return q.PageSize
}

// TotalPages computes ceil(total/pageSize); zero when there are no rows.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
