package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rharris115/callable-graph/internal/app/dto"
	"github.com/rharris115/callable-graph/internal/infrastructure/metrics"
	"github.com/rharris115/callable-graph/pkg/serialization"
)

// SQLiteStore persists invocation logs in SQLite, suitable for single-host
// deployments without a database server.
type SQLiteStore struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// NewSQLiteStore creates a SQLite-backed store.
func NewSQLiteStore(db *sql.DB, serializer *serialization.Serializer) *SQLiteStore {
	return &SQLiteStore{
		db:         db,
		serializer: serializer,
		tableName:  "invocation_logs",
	}
}

// OpenSQLiteStore opens (or creates) a SQLite database at path, ensures the
// schema, and returns a store over it.
func OpenSQLiteStore(ctx context.Context, path string, serializer *serialization.Serializer) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	s := NewSQLiteStore(db, serializer)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the backing table if it does not exist.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			graph_name TEXT NOT NULL,
			report BLOB NOT NULL,
			started_at TEXT NOT NULL
		)
	`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores a log, replacing any record with the same ID.
func (s *SQLiteStore) Save(ctx context.Context, log *dto.InvocationLog) error {
	if log == nil {
		return ErrNilLog
	}
	if log.ID == "" {
		return ErrInvalidLogID
	}

	data, err := s.serializer.Serialize(log.Report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, graph_name, report, started_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			graph_name = excluded.graph_name,
			report = excluded.report,
			started_at = excluded.started_at
	`, s.tableName)

	startedAt := log.StartedAt.UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, query, log.ID, log.GraphName, data, startedAt); err != nil {
		return fmt.Errorf("failed to save invocation log: %w", err)
	}
	metrics.IncReportsSaved()
	return nil
}

// Load retrieves a log by ID.
func (s *SQLiteStore) Load(ctx context.Context, id string) (*dto.InvocationLog, error) {
	if id == "" {
		return nil, ErrInvalidLogID
	}

	query := fmt.Sprintf(`
		SELECT id, graph_name, report, started_at
		FROM %s
		WHERE id = ?
	`, s.tableName)

	row := s.db.QueryRowContext(ctx, query, id)
	log, err := scanLog(row.Scan, s.serializer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return log, nil
}

// List returns logs for the given graph name, newest first. An empty name
// matches every log.
func (s *SQLiteStore) List(ctx context.Context, graphName string) ([]*dto.InvocationLog, error) {
	query := fmt.Sprintf(`
		SELECT id, graph_name, report, started_at
		FROM %s
		WHERE (? = '' OR graph_name = ?)
		ORDER BY started_at DESC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, graphName, graphName)
	if err != nil {
		return nil, fmt.Errorf("failed to list invocation logs: %w", err)
	}
	defer rows.Close()

	var logs []*dto.InvocationLog
	for rows.Next() {
		log, err := scanLog(rows.Scan, s.serializer)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invocation logs: %w", err)
	}
	return logs, nil
}

// Delete removes a log by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidLogID
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete invocation log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrLogNotFound
	}
	return nil
}

func scanLog(scan func(dest ...any) error, serializer *serialization.Serializer) (*dto.InvocationLog, error) {
	var log dto.InvocationLog
	var data []byte
	var startedAt string
	if err := scan(&log.ID, &log.GraphName, &data, &startedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan invocation log: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	log.StartedAt = ts
	if err := serializer.Deserialize(data, &log.Report); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	return &log, nil
}
