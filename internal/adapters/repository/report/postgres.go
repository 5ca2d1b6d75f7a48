package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rharris115/callable-graph/internal/app/dto"
	"github.com/rharris115/callable-graph/internal/infrastructure/metrics"
	"github.com/rharris115/callable-graph/pkg/serialization"
)

// PostgresStore persists invocation logs in PostgreSQL. The report body is
// stored as a serialized blob; identity columns stay queryable.
type PostgresStore struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool, serializer *serialization.Serializer) *PostgresStore {
	return &PostgresStore{
		pool:       pool,
		serializer: serializer,
		tableName:  "invocation_logs",
	}
}

// EnsureSchema creates the backing table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			graph_name TEXT NOT NULL,
			report BYTEA NOT NULL,
			started_at TIMESTAMPTZ NOT NULL
		)
	`, s.tableName)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Save stores a log, replacing any record with the same ID.
func (s *PostgresStore) Save(ctx context.Context, log *dto.InvocationLog) error {
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
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			graph_name = EXCLUDED.graph_name,
			report = EXCLUDED.report,
			started_at = EXCLUDED.started_at
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, log.ID, log.GraphName, data, log.StartedAt); err != nil {
		return fmt.Errorf("failed to save invocation log: %w", err)
	}
	metrics.IncReportsSaved()
	return nil
}

// Load retrieves a log by ID.
func (s *PostgresStore) Load(ctx context.Context, id string) (*dto.InvocationLog, error) {
	if id == "" {
		return nil, ErrInvalidLogID
	}

	query := fmt.Sprintf(`
		SELECT id, graph_name, report, started_at
		FROM %s
		WHERE id = $1
	`, s.tableName)

	var log dto.InvocationLog
	var data []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&log.ID, &log.GraphName, &data, &log.StartedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("failed to load invocation log: %w", err)
	}

	if err := s.serializer.Deserialize(data, &log.Report); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	return &log, nil
}

// List returns logs for the given graph name, newest first. An empty name
// matches every log.
func (s *PostgresStore) List(ctx context.Context, graphName string) ([]*dto.InvocationLog, error) {
	query := fmt.Sprintf(`
		SELECT id, graph_name, report, started_at
		FROM %s
		WHERE ($1 = '' OR graph_name = $1)
		ORDER BY started_at DESC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, graphName)
	if err != nil {
		return nil, fmt.Errorf("failed to list invocation logs: %w", err)
	}
	defer rows.Close()

	var logs []*dto.InvocationLog
	for rows.Next() {
		var log dto.InvocationLog
		var data []byte
		if err := rows.Scan(&log.ID, &log.GraphName, &data, &log.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invocation log: %w", err)
		}
		if err := s.serializer.Deserialize(data, &log.Report); err != nil {
			return nil, fmt.Errorf("failed to deserialize report: %w", err)
		}
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invocation logs: %w", err)
	}
	return logs, nil
}

// Delete removes a log by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidLogID
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete invocation log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}
