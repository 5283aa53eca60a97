package record

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"recordcheck/internal/validation/models"
)

// DefaultTable holds one JSONB document per subject.
const DefaultTable = "records"

// documentIDField is the document database's own key. It is not part of the record.
const documentIDField = "_id"

// PostgresStore reads canonical records stored as JSONB documents.
//
// Lookup failures are logged and reported as "absent" (or an empty list). Callers cannot
// tell a missing record from an unreachable database; only the log line can.
type PostgresStore struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTable overrides the documents table name.
func WithTable(table string) PostgresOption {
	return func(s *PostgresStore) {
		if table != "" {
			s.table = table
		}
	}
}

// WithLogger sets the logger used for masked lookup failures.
func WithLogger(logger *slog.Logger) PostgresOption {
	return func(s *PostgresStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, table: DefaultTable, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostgresStore) Get(ctx context.Context, subjectID string) (models.CanonicalRecord, bool) {
	record, err := s.find(ctx, subjectID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.ErrorContext(ctx, "failed to load canonical record",
				"subject_id", subjectID,
				"error", err,
			)
		}
		return nil, false
	}
	return record, true
}

func (s *PostgresStore) Exists(ctx context.Context, subjectID string) bool {
	_, ok := s.Get(ctx, subjectID)
	return ok
}

// ListIDs returns every subject id in storage order.
func (s *PostgresStore) ListIDs(ctx context.Context) []string {
	ids, err := s.listIDs(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list canonical record ids", "error", err)
		return []string{}
	}
	return ids
}

func (s *PostgresStore) find(ctx context.Context, subjectID string) (models.CanonicalRecord, error) {
	query := fmt.Sprintf(`SELECT document FROM %s WHERE subject_id = $1`, pq.QuoteIdentifier(s.table))
	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, subjectID).Scan(&raw); err != nil {
		return nil, err
	}
	// Numbers stay json.Number so large integers are compared exactly.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var record models.CanonicalRecord
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("unmarshal record document: %w", err)
	}
	if record == nil {
		record = models.CanonicalRecord{}
	}
	delete(record, documentIDField)
	return record, nil
}

func (s *PostgresStore) listIDs(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT subject_id FROM %s`, pq.QuoteIdentifier(s.table))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list record ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan record id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record ids: %w", err)
	}
	return ids, nil
}

// Ping verifies the documents table is reachable. Used during backend construction,
// where failures must surface instead of being masked.
func (s *PostgresStore) Ping(ctx context.Context) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s LIMIT 1`, pq.QuoteIdentifier(s.table))
	var one int
	err := s.db.QueryRowContext(ctx, query).Scan(&one)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("ping records table: %w", err)
	}
	return nil
}
