package crud

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/http/middleware"
	"campusapi/internal/http/respond"
)

// ClientFactory hands out a database client for a single request. It may
// fail, or return a nil handle when the backend was never initialized.
type ClientFactory func(ctx context.Context) (*sql.DB, error)

// PoolClients adapts a shared *sql.DB pool to the per-request ClientFactory
// contract. Each request checks its connection out of the pool; no handle is
// retained between requests.
func PoolClients(db *sql.DB) ClientFactory {
	return func(ctx context.Context) (*sql.DB, error) {
		return db, nil
	}
}

// HandlerFunc is a resource handler that receives the request-scoped client.
type HandlerFunc func(c *fiber.Ctx, db *sql.DB) error

// Dispatch wraps a HandlerFunc into a fiber.Handler. It acquires the client,
// forwards control, and translates anything that escapes the handler, whether
// an error return or a panic, into a generic failure envelope. Internal error
// text goes to the log, never to the client.
func Dispatch(clients ClientFactory, fn HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logFault(c, "handler_panic", fmt.Errorf("panic: %v", r))
				err = respond.Error(c, fiber.StatusInternalServerError, respond.CodeInternal, "internal server error")
			}
		}()

		db, ferr := clients(c.UserContext())
		if ferr != nil || db == nil {
			if ferr != nil {
				logFault(c, "client_acquire_failed", ferr)
			}
			return respond.Error(c, fiber.StatusInternalServerError, respond.CodeBackendNotInitialized, "database client is not initialized")
		}

		if herr := fn(c, db); herr != nil {
			logFault(c, "handler_fault", herr)
			return respond.Error(c, fiber.StatusInternalServerError, respond.CodeInternal, "internal server error")
		}
		return nil
	}
}

// logFault writes one JSON diagnostic line per caught fault.
func logFault(c *fiber.Ctx, event string, err error) {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	entry := map[string]any{
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
		"level":      "error",
		"event":      event,
		"request_id": rid,
		"method":     c.Method(),
		"path":       c.Path(),
		"error":      err.Error(),
	}

	b, merr := json.Marshal(entry)
	if merr != nil {
		log.Printf("failed to marshal fault log: %v", merr)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
