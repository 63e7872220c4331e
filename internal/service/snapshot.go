package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"campusapi/internal/storage"
)

var ErrUnknownResource = errors.New("unknown resource")

// snapshotTables maps the public resource names to their backing tables.
// Only these tables can be exported.
var snapshotTables = map[string]string{
	"university": "universities",
	"college":    "colleges",
	"department": "departments",
	"course":     "courses",
}

// Snapshot describes one completed export.
type Snapshot struct {
	Resource  string    `json:"resource"`
	Key       string    `json:"key"`
	Rows      int       `json:"rows"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotService exports full catalog tables to object storage.
type SnapshotService interface {
	// Export dumps every row of the named resource as a JSON document,
	// uploads it, and returns the object key with a presigned URL.
	Export(ctx context.Context, resource string) (*Snapshot, error)
}

type snapshotService struct {
	db    *sql.DB
	store storage.Storage
}

// NewSnapshotService constructs a SnapshotService.
func NewSnapshotService(db *sql.DB, store storage.Storage) SnapshotService {
	return &snapshotService{db: db, store: store}
}

func (s *snapshotService) Export(ctx context.Context, resource string) (*Snapshot, error) {
	table, ok := snapshotTables[resource]
	if !ok {
		return nil, ErrUnknownResource
	}

	records, err := s.dumpTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("dump %s: %w", table, err)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/%s/%s.json", table, uuid.NewString())
	if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/json",
		Metadata:    map[string]string{"resource": resource},
	}); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, time.Hour)
	if err != nil {
		// The object is useless without a way to fetch it; roll it back.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}

	return &Snapshot{
		Resource:  resource,
		Key:       key,
		Rows:      len(records),
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// dumpTable reads every row into generic column→value maps so one query
// serves all four catalog tables.
func (s *snapshotService) dumpTable(ctx context.Context, table string) ([]map[string]any, error) {
	rows, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("*").
		From(table).
		OrderBy("created_at ASC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
