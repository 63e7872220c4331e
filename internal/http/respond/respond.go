package respond

import (
	"github.com/gofiber/fiber/v2"
)

// Package respond is the single exit point for API responses. Handlers never
// build raw JSON bodies; they call Success/Page/Error so every endpoint shares
// one wire shape:
//
//	{"success":true,"data":...,"pagination":{...}}
//	{"success":false,"error":{"code":"...","message":"...","details":...}}

// Pagination is the metadata block attached to paginated success responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type successBody struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type errorBody struct {
	Success bool      `json:"success"`
	Error   ErrorInfo `json:"error"`
}

// ErrorInfo carries the machine-readable failure description.
type ErrorInfo struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// Success writes a success envelope with the given status code.
func Success(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(successBody{Success: true, Data: payload})
}

// Page writes a 200 success envelope with pagination metadata.
func Page(c *fiber.Ctx, payload any, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(successBody{Success: true, Data: payload, Pagination: &p})
}

// Error writes a failure envelope with an empty details object.
func Error(c *fiber.Ctx, status int, code Code, message string) error {
	return ErrorDetails(c, status, code, message, struct{}{})
}

// ErrorDetails writes a failure envelope carrying structured details,
// e.g. flattened validation errors or conflict information.
func ErrorDetails(c *fiber.Ctx, status int, code Code, message string, details any) error {
	if details == nil {
		details = struct{}{}
	}
	return c.Status(status).JSON(errorBody{
		Success: false,
		Error:   ErrorInfo{Code: code, Message: message, Details: details},
	})
}

// ErrorHandler returns the Fiber global error handler. Anything that escapes
// a route handler (including Fiber's own 404/405) is normalized into the
// failure envelope; internal error text is never echoed back.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			return Error(c, status, CodeBadRequest, "bad request")
		case fiber.StatusNotFound:
			return Error(c, status, CodeNotFound, "resource not found")
		case fiber.StatusServiceUnavailable:
			return Error(c, status, CodeServiceUnavailable, "service unavailable")
		default:
			return Error(c, status, CodeInternal, "internal server error")
		}
	}
}
