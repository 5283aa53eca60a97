package process

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"recordcheck/internal/validation/models"
	id "recordcheck/pkg/domain"
	"recordcheck/pkg/platform/tx"
)

// SQLiteStore persists validation processes in an embedded SQLite file. It survives
// restarts without any external service. SQLite serializes writers, so the
// read-transition-write cycle only needs a transaction.
type SQLiteStore struct {
	db    *sql.DB
	table string
	clock Clock
}

// NewSQLite constructs a SQLite-backed process store and creates its table.
func NewSQLite(ctx context.Context, db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	o := buildOptions(opts)
	s := &SQLiteStore{db: db, table: o.table, clock: o.clock}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		process_id    TEXT PRIMARY KEY,
		subject_id    TEXT NOT NULL,
		contact       TEXT,
		status        TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT,
		error_message TEXT,
		result_data   TEXT
	)`, s.quotedTable())
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrate validation processes: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Create(ctx context.Context, subjectID id.SubjectID, contact *string) (*models.ValidationProcess, error) {
	p, err := models.NewValidationProcess(id.NewProcessID(), subjectID, contact, s.clock())
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`INSERT INTO %s (process_id, subject_id, contact, status, created_at) VALUES (?, ?, ?, ?, ?)`, s.quotedTable())
	_, err = s.db.ExecContext(ctx, query,
		p.ProcessID.String(), p.SubjectID.String(), nullString(p.Contact), string(p.Status), formatTime(p.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("create validation process: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, processID id.ProcessID) (*models.ValidationProcess, error) {
	p, err := scanSQLiteProcess(s.db.QueryRowContext(ctx, s.selectQuery(), processID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProcessNotFound
		}
		return nil, fmt.Errorf("find validation process: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, processID id.ProcessID, status models.Status, outcome models.Outcome) (*models.ValidationProcess, error) {
	var updated *models.ValidationProcess
	err := tx.Run(ctx, s.db, func(ctx context.Context, sqlTx *sql.Tx) error {
		p, err := scanSQLiteProcess(sqlTx.QueryRowContext(ctx, s.selectQuery(), processID.String()))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrProcessNotFound
			}
			return fmt.Errorf("load validation process: %w", err)
		}
		if err := p.Transition(status, outcome, s.clock()); err != nil {
			return err
		}
		result, err := marshalResult(p.Result)
		if err != nil {
			return err
		}
		query := fmt.Sprintf(`UPDATE %s SET status = ?, updated_at = ?, error_message = ?, result_data = ? WHERE process_id = ?`, s.quotedTable())
		if _, err := sqlTx.ExecContext(ctx, query,
			string(p.Status), formatTime(*p.UpdatedAt), nullString(p.ErrorMessage), result, p.ProcessID.String()); err != nil {
			return fmt.Errorf("update validation process: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SQLiteStore) selectQuery() string {
	return fmt.Sprintf(`
		SELECT process_id, subject_id, contact, status, created_at, updated_at, error_message, result_data
		FROM %s
		WHERE process_id = ?`, s.quotedTable())
}

func scanSQLiteProcess(row rowScanner) (*models.ValidationProcess, error) {
	var (
		processID, subjectID, status, createdAt string
		contact, updatedAt, errorMessage, result sql.NullString
	)
	if err := row.Scan(&processID, &subjectID, &contact, &status, &createdAt, &updatedAt, &errorMessage, &result); err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	p := &models.ValidationProcess{
		ProcessID:    id.ProcessID(processID),
		SubjectID:    id.SubjectID(subjectID),
		Contact:      stringPtr(contact),
		Status:       models.Status(status),
		CreatedAt:    created,
		ErrorMessage: stringPtr(errorMessage),
	}
	if updatedAt.Valid {
		updated, err := time.Parse(time.RFC3339Nano, updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		p.UpdatedAt = &updated
	}
	if result.Valid {
		if err := unmarshalResult([]byte(result.String), p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// quotedTable applies standard SQL identifier quoting, which SQLite shares with Postgres.
func (s *SQLiteStore) quotedTable() string {
	return pq.QuoteIdentifier(s.table)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
