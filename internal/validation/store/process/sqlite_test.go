package process

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"recordcheck/internal/platform/sqlite"
	"recordcheck/internal/validation/models"
)

func TestSQLiteContract(t *testing.T) {
	suite.Run(t, &ContractSuite{newStore: func(clock Clock) store {
		db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "processes.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		s, err := NewSQLite(context.Background(), db, WithClock(clock))
		require.NoError(t, err)
		return s
	}})
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "processes.db")

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	first, err := NewSQLite(ctx, db)
	require.NoError(t, err)
	p, err := first.Create(ctx, testSubject, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	second, err := NewSQLite(ctx, db)
	require.NoError(t, err)

	found, err := second.FindByID(ctx, p.ProcessID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, found.Status)
}

func TestSQLite_QuotesConfiguredTableName(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "processes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewSQLite(ctx, db, WithTable(`runs "2026" \ audit`))
	require.NoError(t, err)

	p, err := s.Create(ctx, testSubject, nil)
	require.NoError(t, err)
	_, err = s.UpdateStatus(ctx, p.ProcessID, models.StatusInProgress, models.Outcome{})
	require.NoError(t, err)

	found, err := s.FindByID(ctx, p.ProcessID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, found.Status)

	var name string
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, `runs "2026" \ audit`).Scan(&name))
	assert.Equal(t, `runs "2026" \ audit`, name)
}
