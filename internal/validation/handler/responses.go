package handler

import (
	"time"

	"recordcheck/internal/validation/models"
)

const initiatedMessage = "Validation process initiated successfully"

// ValidationProcessResponse is returned by both validation endpoints.
type ValidationProcessResponse struct {
	ProcessID    string         `json:"process_id"`
	SubjectID    string         `json:"uuid_str"`
	Email        *string        `json:"email"`
	Status       models.Status  `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	ResultData   map[string]any `json:"result_data,omitempty"`
	Message      string         `json:"message"`
}

// FromProcess converts a process snapshot to its HTTP representation.
func FromProcess(p *models.ValidationProcess, message string) *ValidationProcessResponse {
	return &ValidationProcessResponse{
		ProcessID:    p.ProcessID.String(),
		SubjectID:    p.SubjectID.String(),
		Email:        p.Contact,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		ErrorMessage: p.ErrorMessage,
		ResultData:   p.Result,
		Message:      message,
	}
}

// SubjectsResponse lists canonical record ids.
type SubjectsResponse struct {
	SubjectIDs []string `json:"subject_ids"`
	Count      int      `json:"count"`
}
