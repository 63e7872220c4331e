package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_universities",
		SQL: `CREATE TABLE IF NOT EXISTS universities (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name         TEXT        NOT NULL UNIQUE,
  abbreviation TEXT        NOT NULL DEFAULT '',
  website      TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_colleges",
		SQL: `CREATE TABLE IF NOT EXISTS colleges (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  university_id UUID        NOT NULL REFERENCES universities (id) ON DELETE CASCADE,
  name          TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (university_id, name)
);`,
	},
	{
		Name: "create_table_departments",
		SQL: `CREATE TABLE IF NOT EXISTS departments (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  college_id UUID        NOT NULL REFERENCES colleges (id) ON DELETE CASCADE,
  name       TEXT        NOT NULL,
  code       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (college_id, code)
);`,
	},
	{
		Name: "create_table_courses",
		SQL: `CREATE TABLE IF NOT EXISTS courses (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  department_id UUID        NOT NULL REFERENCES departments (id) ON DELETE CASCADE,
  code          TEXT        NOT NULL,
  title         TEXT        NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  credits       INTEGER     NOT NULL CHECK (credits > 0),
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (department_id, code)
);`,
	},
	{
		Name: "create_index_colleges_university_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_colleges_university_id ON colleges (university_id);`,
	},
	{
		Name: "create_index_departments_college_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_departments_college_id ON departments (college_id);`,
	},
	{
		Name: "create_index_courses_department_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_courses_department_id ON courses (department_id);`,
	},
	{
		Name: "create_index_courses_code",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_courses_code ON courses (code);`,
	},
}

// EnsureMigrated creates the catalog schema when the sentinel table is
// missing. Each step is idempotent, so a partial earlier run is safe.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.universities') IS NOT NULL").Scan(&exists); err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
