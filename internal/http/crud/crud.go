package crud

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"campusapi/internal/http/respond"
)

// psql builds statements with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// RowScanner matches both *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Transformer is a typed hook point. A nil Transformer means identity.
type Transformer[T any] func(T) T

// Resource is the declarative configuration the handler factory consumes.
// M is the row model, C the create payload, U the update payload. The
// config is captured by the generated handlers and must not be mutated
// after NewHandlers returns.
type Resource[M, C, U any] struct {
	// Table is the backing table name. Required.
	Table string
	// Name is the human-readable resource name used in messages.
	// Defaults to Table.
	Name string
	// Columns is the selection list, also returned by INSERT/UPDATE.
	// Required; the order must match what Scan expects.
	Columns []string
	// OrderBy fixes the listing order. Defaults to "created_at DESC".
	OrderBy string
	// Scan reads one row in Columns order. Required.
	Scan func(RowScanner) (M, error)
	// AfterGet runs over each fetched page before it is returned.
	AfterGet Transformer[[]M]
	// BeforeInsert runs over the validated create payload before insert.
	BeforeInsert Transformer[C]
}

func (r Resource[M, C, U]) name() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Table
}

func (r Resource[M, C, U]) orderBy() string {
	if r.OrderBy != "" {
		return r.OrderBy
	}
	return "created_at DESC"
}

func (r Resource[M, C, U]) returning() string {
	return "RETURNING " + strings.Join(r.Columns, ", ")
}

// Handlers are the four endpoint functions generated for one resource.
type Handlers struct {
	List   fiber.Handler
	Create fiber.Handler
	Update fiber.Handler
	Delete fiber.Handler
}

// NewHandlers generates list/create/update/delete handlers for the given
// resource configuration, each wrapped in Dispatch. An incomplete config is
// a programming error and panics at registration time, before any request
// is served.
func NewHandlers[M, C, U any](cfg Resource[M, C, U], clients ClientFactory) Handlers {
	if cfg.Table == "" {
		panic("crud: Resource.Table is required")
	}
	if len(cfg.Columns) == 0 {
		panic("crud: Resource.Columns is required")
	}
	if cfg.Scan == nil {
		panic("crud: Resource.Scan is required")
	}

	return Handlers{
		List:   Dispatch(clients, listHandler(cfg)),
		Create: Dispatch(clients, createHandler(cfg)),
		Update: Dispatch(clients, updateHandler(cfg)),
		Delete: Dispatch(clients, deleteHandler(cfg)),
	}
}

func listHandler[M, C, U any](cfg Resource[M, C, U]) HandlerFunc {
	return func(c *fiber.Ctx, db *sql.DB) error {
		ctx := c.UserContext()
		q := ParsePageQuery(c)

		var total int
		err := psql.Select("COUNT(*)").
			From(cfg.Table).
			RunWith(db).
			QueryRowContext(ctx).
			Scan(&total)
		if err != nil {
			return queryFault(c, fmt.Errorf("count %s: %w", cfg.Table, err))
		}

		rows, err := psql.Select(cfg.Columns...).
			From(cfg.Table).
			OrderBy(cfg.orderBy()).
			Limit(uint64(q.Limit())).
			Offset(uint64(q.Offset())).
			RunWith(db).
			QueryContext(ctx)
		if err != nil {
			return queryFault(c, fmt.Errorf("list %s: %w", cfg.Table, err))
		}
		defer rows.Close()

		items := make([]M, 0, q.PageSize)
		for rows.Next() {
			m, err := cfg.Scan(rows)
			if err != nil {
				return queryFault(c, fmt.Errorf("scan %s: %w", cfg.Table, err))
			}
			items = append(items, m)
		}
		if err := rows.Err(); err != nil {
			return queryFault(c, fmt.Errorf("list %s: %w", cfg.Table, err))
		}

		if cfg.AfterGet != nil {
			items = cfg.AfterGet(items)
		}

		return respond.Page(c, items, respond.Pagination{
			Page:       q.Page,
			PageSize:   len(items),
			Total:      total,
			TotalPages: TotalPages(total, q.PageSize),
		})
	}
}

func createHandler[M, C, U any](cfg Resource[M, C, U]) HandlerFunc {
	return func(c *fiber.Ctx, db *sql.DB) error {
		var in C
		if err := c.BodyParser(&in); err != nil {
			return respond.Error(c, fiber.StatusBadRequest, respond.CodeBadRequest, "malformed request body")
		}
		if err := validate.Struct(in); err != nil {
			return respond.ErrorDetails(c, fiber.StatusUnprocessableEntity, respond.CodeValidationError,
				"invalid "+cfg.name()+" payload", flattenErrors(err))
		}

		if cfg.BeforeInsert != nil {
			in = cfg.BeforeInsert(in)
		}

		row := psql.Insert(cfg.Table).
			SetMap(fieldMap(in)).
			Suffix(cfg.returning()).
			RunWith(db).
			QueryRowContext(c.UserContext())

		m, err := cfg.Scan(row)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return respond.ErrorDetails(c, fiber.StatusConflict, respond.CodeConflict,
					cfg.name()+" already exists", fiber.Map{"constraint": pgErr.ConstraintName})
			}
			return queryFault(c, fmt.Errorf("insert %s: %w", cfg.Table, err))
		}

		return respond.Success(c, fiber.StatusCreated, m)
	}
}

func updateHandler[M, C, U any](cfg Resource[M, C, U]) HandlerFunc {
	return func(c *fiber.Ctx, db *sql.DB) error {
		var in U
		if err := c.BodyParser(&in); err != nil {
			return respond.Error(c, fiber.StatusBadRequest, respond.CodeBadRequest, "malformed request body")
		}
		if err := validate.Struct(in); err != nil {
			return respond.ErrorDetails(c, fiber.StatusUnprocessableEntity, respond.CodeValidationError,
				"invalid "+cfg.name()+" payload", flattenErrors(err))
		}

		fields := fieldMap(in)
		id, _ := fields["id"].(string)
		delete(fields, "id")
		if id == "" {
			return respond.Error(c, fiber.StatusBadRequest, respond.CodeBadRequest, "id is required")
		}
		if len(fields) == 0 {
			return respond.Error(c, fiber.StatusBadRequest, respond.CodeBadRequest, "no fields to update")
		}

		row := psql.Update(cfg.Table).
			SetMap(fields).
			Where(sq.Eq{"id": id}).
			Suffix(cfg.returning()).
			RunWith(db).
			QueryRowContext(c.UserContext())

		m, err := cfg.Scan(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return respond.Error(c, fiber.StatusNotFound, respond.CodeNotFound,
					fmt.Sprintf("%s %q not found", cfg.name(), id))
			}
			return queryFault(c, fmt.Errorf("update %s: %w", cfg.Table, err))
		}

		return respond.Success(c, fiber.StatusOK, m)
	}
}

func deleteHandler[M, C, U any](cfg Resource[M, C, U]) HandlerFunc {
	return func(c *fiber.Ctx, db *sql.DB) error {
		var in struct {
			ID string `json:"id"`
		}
		if err := c.BodyParser(&in); err != nil || in.ID == "" {
			return respond.Error(c, fiber.StatusBadRequest, respond.CodeBadRequest, "id is required")
		}

		res, err := psql.Delete(cfg.Table).
			Where(sq.Eq{"id": in.ID}).
			RunWith(db).
			ExecContext(c.UserContext())
		if err != nil {
			return queryFault(c, fmt.Errorf("delete %s: %w", cfg.Table, err))
		}

		n, err := res.RowsAffected()
		if err != nil {
			return queryFault(c, fmt.Errorf("delete %s: %w", cfg.Table, err))
		}
		if n == 0 {
			return respond.Error(c, fiber.StatusNotFound, respond.CodeNotFound,
				fmt.Sprintf("%s %q not found", cfg.name(), in.ID))
		}

		return respond.Success(c, fiber.StatusOK, fiber.Map{"message": cfg.name() + " deleted"})
	}
}

// queryFault logs the underlying backend error and answers with the generic
// query-error envelope. The error text stays in the log.
func queryFault(c *fiber.Ctx, err error) error {
	logFault(c, "query_failed", err)
	return respond.Error(c, fiber.StatusInternalServerError, respond.CodeQueryError, "query failed")
}
