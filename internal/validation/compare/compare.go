// Package compare detects field-level anomalies between an externally extracted field map
// and a canonical record.
package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"reflect"
	"slices"
	"strings"

	"github.com/gowebpki/jcs"

	"recordcheck/internal/validation/models"
	id "recordcheck/pkg/domain"
)

// RecordStore is the read side of the canonical record repository.
type RecordStore interface {
	Get(ctx context.Context, subjectID string) (models.CanonicalRecord, bool)
}

// Comparator compares extracted fields against records loaded from a RecordStore.
type Comparator struct {
	records RecordStore
}

// New constructs a Comparator.
func New(records RecordStore) *Comparator {
	return &Comparator{records: records}
}

// Compare loads the canonical record for subjectID and compares extracted against it.
// An absent record is reported as models.ErrSubjectNotFound.
func (c *Comparator) Compare(ctx context.Context, subjectID id.SubjectID, extracted map[string]any) (*models.ComparisonResult, error) {
	record, ok := c.records.Get(ctx, subjectID.String())
	if !ok {
		return nil, models.ErrSubjectNotFound
	}
	result := Fields(record, extracted)
	result.SubjectID = subjectID
	return result, nil
}

// Fields partitions extracted into matches, anomalies and additional info.
//
// A key whose canonical value is missing or nil is additional info. Two strings are equal
// when they match after trimming surrounding whitespace and lower-casing. Any other pair is
// compared structurally. Keys are visited in sorted order so the output is deterministic.
func Fields(record models.CanonicalRecord, extracted map[string]any) *models.ComparisonResult {
	result := &models.ComparisonResult{
		CanonicalRecord: record,
		ExtractedFields: extracted,
		Matches:         []models.FieldMatch{},
		Anomalies:       []models.FieldAnomaly{},
		AdditionalInfo:  map[string]any{},
	}

	keys := make([]string, 0, len(extracted))
	for k := range extracted {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, field := range keys {
		extractedValue := extracted[field]
		canonicalValue, ok := record[field]
		if !ok || canonicalValue == nil {
			result.AdditionalInfo[field] = extractedValue
			continue
		}
		if Equal(canonicalValue, extractedValue) {
			result.Matches = append(result.Matches, models.FieldMatch{Field: field, Value: canonicalValue})
			continue
		}
		result.Anomalies = append(result.Anomalies, models.FieldAnomaly{
			Field:          field,
			CanonicalValue: canonicalValue,
			ExtractedValue: extractedValue,
			Type:           models.AnomalyTypeMismatch,
		})
	}
	result.TotalAnomalies = len(result.Anomalies)
	return result
}

// Equal applies the comparison rule to a single pair of values.
func Equal(canonical, extracted any) bool {
	cs, cok := canonical.(string)
	es, eok := extracted.(string)
	if cok && eok {
		return normalize(cs) == normalize(es)
	}
	return structurallyEqual(canonical, extracted)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// structurallyEqual walks decoded JSON maps and lists. Integer pairs compare exactly;
// other leaves compare by RFC 8785 canonical JSON, so numbers decoded as different Go
// types still compare equal. Nested strings are compared exactly.
func structurallyEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !structurallyEqual(v, w) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !structurallyEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}

	if ia, ok := exactInteger(a); ok {
		if ib, ok := exactInteger(b); ok {
			return ia.Cmp(ib) == 0
		}
	}

	ca, errA := canonicalJSON(a)
	cb, errB := canonicalJSON(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ca, cb)
}

// exactInteger reports v as an arbitrary precision integer when it is a Go integer or a
// json.Number holding an integer literal. Canonical JSON would round both to a double.
func exactInteger(v any) (*big.Int, bool) {
	if n, ok := v.(json.Number); ok {
		return new(big.Int).SetString(n.String(), 10)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), true
	}
	return nil, false
}

func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(raw)
}
