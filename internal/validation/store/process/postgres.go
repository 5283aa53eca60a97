package process

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"recordcheck/internal/validation/models"
	id "recordcheck/pkg/domain"
	"recordcheck/pkg/platform/tx"
)

// PostgresStore persists validation processes in PostgreSQL. Status updates lock the row
// for the duration of the read-transition-write cycle.
type PostgresStore struct {
	db    *sql.DB
	table string
	clock Clock
}

// NewPostgres constructs a PostgreSQL-backed process store.
func NewPostgres(db *sql.DB, opts ...Option) *PostgresStore {
	o := buildOptions(opts)
	return &PostgresStore{db: db, table: pq.QuoteIdentifier(o.table), clock: o.clock}
}

// Migrate creates the processes table when missing. It also serves as the connectivity
// check during backend construction.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			process_id    TEXT PRIMARY KEY,
			subject_id    TEXT NOT NULL,
			contact       TEXT,
			status        TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ,
			error_message TEXT,
			result_data   JSONB
		)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrate validation processes: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, subjectID id.SubjectID, contact *string) (*models.ValidationProcess, error) {
	p, err := models.NewValidationProcess(id.NewProcessID(), subjectID, contact, s.clock())
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (process_id, subject_id, contact, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`, s.table)
	_, err = s.db.ExecContext(ctx, query,
		p.ProcessID.String(), p.SubjectID.String(), nullString(p.Contact), string(p.Status), p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create validation process: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, processID id.ProcessID) (*models.ValidationProcess, error) {
	row := s.db.QueryRowContext(ctx, s.selectQuery(""), processID.String())
	p, err := scanPostgresProcess(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProcessNotFound
		}
		return nil, fmt.Errorf("find validation process: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, processID id.ProcessID, status models.Status, outcome models.Outcome) (*models.ValidationProcess, error) {
	var updated *models.ValidationProcess
	err := tx.Run(ctx, s.db, func(ctx context.Context, sqlTx *sql.Tx) error {
		p, err := scanPostgresProcess(sqlTx.QueryRowContext(ctx, s.selectQuery("FOR UPDATE"), processID.String()))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrProcessNotFound
			}
			return fmt.Errorf("lock validation process: %w", err)
		}
		if err := p.Transition(status, outcome, s.clock()); err != nil {
			return err
		}
		result, err := marshalResult(p.Result)
		if err != nil {
			return err
		}
		query := fmt.Sprintf(`
			UPDATE %s
			SET status = $2, updated_at = $3, error_message = $4, result_data = $5
			WHERE process_id = $1`, s.table)
		if _, err := sqlTx.ExecContext(ctx, query,
			p.ProcessID.String(), string(p.Status), *p.UpdatedAt, nullString(p.ErrorMessage), result); err != nil {
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

func (s *PostgresStore) selectQuery(suffix string) string {
	return fmt.Sprintf(`
		SELECT process_id, subject_id, contact, status, created_at, updated_at, error_message, result_data
		FROM %s
		WHERE process_id = $1 %s`, s.table, suffix)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgresProcess(row rowScanner) (*models.ValidationProcess, error) {
	var (
		processID, subjectID, status string
		contact, errorMessage        sql.NullString
		createdAt                    time.Time
		updatedAt                    sql.NullTime
		result                       []byte
	)
	if err := row.Scan(&processID, &subjectID, &contact, &status, &createdAt, &updatedAt, &errorMessage, &result); err != nil {
		return nil, err
	}
	p := &models.ValidationProcess{
		ProcessID:    id.ProcessID(processID),
		SubjectID:    id.SubjectID(subjectID),
		Contact:      stringPtr(contact),
		Status:       models.Status(status),
		CreatedAt:    createdAt,
		ErrorMessage: stringPtr(errorMessage),
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	if err := unmarshalResult(result, p); err != nil {
		return nil, err
	}
	return p, nil
}

// marshalResult returns the JSON text for a result, or a nil interface for SQL NULL.
// Text rather than []byte: lib/pq would encode a byte slice as bytea.
func marshalResult(result map[string]any) (any, error) {
	if result == nil {
		return nil, nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result data: %w", err)
	}
	return string(raw), nil
}

func unmarshalResult(raw []byte, p *models.ValidationProcess) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &p.Result); err != nil {
		return fmt.Errorf("unmarshal result data: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
