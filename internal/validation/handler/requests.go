package handler

import (
	id "recordcheck/pkg/domain"
)

// ValidateRequest is the HTTP request body for POST /api/validate.
type ValidateRequest struct {
	SubjectID *string `json:"uuid_str"`
}

// Validate rejects an absent identifier. The format check belongs to the service so that
// it applies to every caller.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ValidateRequest) Validate() error {
	if r == nil || r.SubjectID == nil {
		return id.ErrMissingIdentifier
	}
	return nil
}
