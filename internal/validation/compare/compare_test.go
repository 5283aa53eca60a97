package compare

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordcheck/internal/validation/models"
	"recordcheck/internal/validation/store/record"
	id "recordcheck/pkg/domain"
)

func TestFields(t *testing.T) {
	t.Run("case and whitespace differences match", func(t *testing.T) {
		result := Fields(models.CanonicalRecord{"name": "Jane Doe"}, map[string]any{"name": "  jane doe "})
		require.Len(t, result.Matches, 1)
		assert.Equal(t, "name", result.Matches[0].Field)
		assert.Equal(t, "Jane Doe", result.Matches[0].Value)
		assert.Empty(t, result.Anomalies)
		assert.Zero(t, result.TotalAnomalies)
	})

	t.Run("mismatch keeps original values", func(t *testing.T) {
		result := Fields(models.CanonicalRecord{"name": "Jane Doe"}, map[string]any{"name": "John Doe"})
		require.Len(t, result.Anomalies, 1)
		anomaly := result.Anomalies[0]
		assert.Equal(t, "name", anomaly.Field)
		assert.Equal(t, "Jane Doe", anomaly.CanonicalValue)
		assert.Equal(t, "John Doe", anomaly.ExtractedValue)
		assert.Equal(t, models.AnomalyTypeMismatch, anomaly.Type)
		assert.Equal(t, 1, result.TotalAnomalies)
		assert.True(t, result.HasAnomalies())
	})

	t.Run("fields missing from the record are additional info", func(t *testing.T) {
		result := Fields(models.CanonicalRecord{"name": "Jane"}, map[string]any{"name": "Jane", "middle_name": "Ann"})
		assert.Len(t, result.Matches, 1)
		assert.Empty(t, result.Anomalies)
		assert.Equal(t, map[string]any{"middle_name": "Ann"}, result.AdditionalInfo)
	})

	t.Run("nil canonical value is additional info", func(t *testing.T) {
		result := Fields(models.CanonicalRecord{"nickname": nil}, map[string]any{"nickname": "JJ"})
		assert.Empty(t, result.Matches)
		assert.Equal(t, "JJ", result.AdditionalInfo["nickname"])
	})

	t.Run("canonical fields absent from extraction are ignored", func(t *testing.T) {
		result := Fields(models.CanonicalRecord{"name": "Jane", "dob": "2015-04-01"}, map[string]any{"name": "Jane"})
		assert.Len(t, result.Matches, 1)
		assert.Empty(t, result.Anomalies)
		assert.Empty(t, result.AdditionalInfo)
	})

	t.Run("output order follows sorted keys", func(t *testing.T) {
		result := Fields(
			models.CanonicalRecord{"b": "x", "a": "y", "c": "z"},
			map[string]any{"c": "z", "a": "y", "b": "x"},
		)
		require.Len(t, result.Matches, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{result.Matches[0].Field, result.Matches[1].Field, result.Matches[2].Field})
	})
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name      string
		canonical any
		extracted any
		want      bool
	}{
		{"strings normalized", " Lahore ", "LAHORE", true},
		{"inner whitespace is significant", "Jane  Doe", "Jane Doe", false},
		{"numbers of different go types", 7, float64(7), true},
		{"different numbers", 7, 8, false},
		{"number against numeric string", 7, "7", false},
		{"booleans", true, true, true},
		{"boolean against string", true, "true", false},
		{"nested maps ignore key order", map[string]any{"a": 1, "b": "x"}, map[string]any{"b": "x", "a": float64(1)}, true},
		{"nested strings compared exactly", map[string]any{"city": "Lahore"}, map[string]any{"city": "lahore"}, false},
		{"lists compared in order", []any{"a", "b"}, []any{"b", "a"}, false},
		{"equal lists", []any{"a", 1}, []any{"a", float64(1)}, true},
		{"large integers differing past float precision", int64(9007199254740993), int64(9007199254740992), false},
		{"equal large integers", int64(9007199254740993), uint64(9007199254740993), true},
		{"negative against unsigned", int64(-1), uint64(1<<64 - 1), false},
		{"json numbers compared exactly", json.Number("9007199254740993"), json.Number("9007199254740992"), false},
		{"json number against go integer", json.Number("9007199254740993"), int64(9007199254740993), true},
		{"large integers nested in maps", map[string]any{"id": int64(9007199254740993)}, map[string]any{"id": int64(9007199254740992)}, false},
		{"large integers nested in lists", []any{int64(9007199254740993)}, []any{int64(9007199254740992)}, false},
		{"maps with different keys", map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{"map against list", map[string]any{}, []any{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.canonical, tt.extracted))
		})
	}
}

func TestComparator_Compare(t *testing.T) {
	ctx := context.Background()
	subject := id.SubjectID("387ec43c-6280-11f0-9d8d-4b43610f4997")
	records := record.NewInMemory()
	records.Put(subject.String(), models.CanonicalRecord{"name": "Jane Doe", "dob": "2015-04-01"})
	comparator := New(records)

	t.Run("compares against the stored record", func(t *testing.T) {
		result, err := comparator.Compare(ctx, subject, map[string]any{"name": "JANE DOE", "dob": "2015-04-02", "school": "Elm"})
		require.NoError(t, err)
		assert.Equal(t, subject, result.SubjectID)
		assert.Len(t, result.Matches, 1)
		assert.Equal(t, 1, result.TotalAnomalies)
		assert.Equal(t, "Elm", result.AdditionalInfo["school"])
	})

	t.Run("absent record is a not-found condition", func(t *testing.T) {
		_, err := comparator.Compare(ctx, "00000000-0000-0000-0000-000000000000", map[string]any{"name": "x"})
		assert.ErrorIs(t, err, models.ErrSubjectNotFound)
	})
}
