package models

import id "recordcheck/pkg/domain"

// FieldMatch is a field whose extracted value agrees with the canonical record.
type FieldMatch struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// FieldAnomaly is a field whose extracted value disagrees with the canonical record.
// Both values are kept exactly as supplied, before normalization.
type FieldAnomaly struct {
	Field          string `json:"field"`
	CanonicalValue any    `json:"canonical_value"`
	ExtractedValue any    `json:"extracted_value"`
	Type           string `json:"type"`
}

// AnomalyTypeMismatch is the only anomaly classification produced today.
const AnomalyTypeMismatch = "mismatch"

// ComparisonResult partitions an extracted field map against a canonical record.
type ComparisonResult struct {
	SubjectID       id.SubjectID    `json:"subject_id,omitempty"`
	CanonicalRecord CanonicalRecord `json:"canonical_record,omitempty"`
	ExtractedFields map[string]any  `json:"extracted_fields"`
	Matches         []FieldMatch    `json:"matches"`
	Anomalies       []FieldAnomaly  `json:"anomalies"`
	AdditionalInfo  map[string]any  `json:"additional_info"`
	TotalAnomalies  int             `json:"total_anomalies"`
}

// HasAnomalies reports whether any field disagreed.
func (r *ComparisonResult) HasAnomalies() bool {
	return r.TotalAnomalies > 0
}
