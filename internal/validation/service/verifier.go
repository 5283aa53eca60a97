package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"recordcheck/internal/validation/compare"
	"recordcheck/internal/validation/metrics"
	"recordcheck/internal/validation/models"
)

// Verifier performs the actual check of a record and returns the result payload stored on
// a completed process. Returning an error fails the process with the error's text.
type Verifier interface {
	Verify(ctx context.Context, proc *models.ValidationProcess, record models.CanonicalRecord) (map[string]any, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, proc *models.ValidationProcess, record models.CanonicalRecord) (map[string]any, error)

func (f VerifierFunc) Verify(ctx context.Context, proc *models.ValidationProcess, record models.CanonicalRecord) (map[string]any, error) {
	return f(ctx, proc, record)
}

const summaryNotes = "Basic record validation completed"

// SummaryVerifier confirms the record exists and summarizes it. This is the default.
type SummaryVerifier struct {
	contactField string
	now          func() time.Time
}

func NewSummaryVerifier(contactField string, now func() time.Time) *SummaryVerifier {
	if contactField == "" {
		contactField = DefaultContactField
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &SummaryVerifier{contactField: contactField, now: now}
}

func (v *SummaryVerifier) Verify(_ context.Context, proc *models.ValidationProcess, record models.CanonicalRecord) (map[string]any, error) {
	fields := make([]string, 0, len(record))
	listCounts := map[string]any{}
	for k, val := range record {
		fields = append(fields, k)
		if list, ok := val.([]any); ok {
			listCounts[k] = len(list)
		}
	}
	slices.Sort(fields)

	return map[string]any{
		"validated":    true,
		"subject_id":   proc.SubjectID.String(),
		"contact":      record[v.contactField],
		"phone":        record["phone"],
		"fields":       fields,
		"list_counts":  listCounts,
		"verified":     record.Verified(),
		"validated_at": v.now().Format(time.RFC3339Nano),
		"notes":        summaryNotes,
	}, nil
}

// FieldExtractor produces the field map to check against the record, typically from an
// external document extraction service.
type FieldExtractor interface {
	Extract(ctx context.Context, proc *models.ValidationProcess, record models.CanonicalRecord) (map[string]any, error)
}

// ExtractionVerifier compares extracted fields with the record. The process is
// verified when the comparison finds no anomalies.
type ExtractionVerifier struct {
	extractor FieldExtractor
	metrics   *metrics.Metrics
}

// NewExtractionVerifier builds an ExtractionVerifier. m may be nil.
func NewExtractionVerifier(extractor FieldExtractor, m *metrics.Metrics) *ExtractionVerifier {
	return &ExtractionVerifier{extractor: extractor, metrics: m}
}

func (v *ExtractionVerifier) Verify(ctx context.Context, proc *models.ValidationProcess, record models.CanonicalRecord) (map[string]any, error) {
	extracted, err := v.extractor.Extract(ctx, proc, record)
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}
	cmp := compare.Fields(record, extracted)
	if v.metrics != nil {
		v.metrics.ObserveAnomalies(cmp.TotalAnomalies)
	}
	return map[string]any{
		"validated":       true,
		"subject_id":      proc.SubjectID.String(),
		"verified":        !cmp.HasAnomalies(),
		"matches":         cmp.Matches,
		"anomalies":       cmp.Anomalies,
		"additional_info": cmp.AdditionalInfo,
		"total_anomalies": cmp.TotalAnomalies,
	}, nil
}
