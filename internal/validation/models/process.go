package models

import (
	"fmt"
	"maps"
	"time"

	id "recordcheck/pkg/domain"
	dErrors "recordcheck/pkg/domain-errors"
	"recordcheck/pkg/platform/sentinel"
)

// ValidationProcess tracks one asynchronous validation of a canonical record.
//
// Invariants:
//   - ProcessID, SubjectID and CreatedAt never change after construction
//   - Status only moves forward (see Status.CanTransitionTo)
//   - Completed carries Result and no ErrorMessage; Failed carries ErrorMessage and no Result
//   - Pending and InProgress carry neither
type ValidationProcess struct {
	ProcessID    id.ProcessID   `json:"process_id"`
	SubjectID    id.SubjectID   `json:"uuid_str"`
	Contact      *string        `json:"email,omitempty"`
	Status       Status         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	Result       map[string]any `json:"result_data,omitempty"`
}

// Outcome is the optional payload of a status transition.
type Outcome struct {
	ErrorMessage string
	Result       map[string]any
}

// NewValidationProcess builds a pending process for subjectID.
func NewValidationProcess(processID id.ProcessID, subjectID id.SubjectID, contact *string, now time.Time) (*ValidationProcess, error) {
	if processID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "process id cannot be empty")
	}
	if subjectID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "subject id cannot be empty")
	}
	return &ValidationProcess{
		ProcessID: processID,
		SubjectID: subjectID,
		Contact:   cloneString(contact),
		Status:    StatusPending,
		CreatedAt: now,
	}, nil
}

// CanTransition checks the edge and the outcome without mutating the process.
func (p *ValidationProcess) CanTransition(next Status, outcome Outcome) error {
	if !p.Status.CanTransitionTo(next) {
		return dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeInvariantViolation,
			fmt.Sprintf("cannot transition process from %s to %s", p.Status, next))
	}
	switch next {
	case StatusCompleted:
		if outcome.Result == nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "completed process requires a result")
		}
	case StatusFailed:
		if outcome.ErrorMessage == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "failed process requires an error message")
		}
	}
	return nil
}

// ApplyTransition moves the process to next and stamps UpdatedAt.
// Call CanTransition first.
func (p *ValidationProcess) ApplyTransition(next Status, outcome Outcome, now time.Time) {
	p.Status = next
	p.UpdatedAt = &now
	p.ErrorMessage = nil
	p.Result = nil
	switch next {
	case StatusCompleted:
		p.Result = maps.Clone(outcome.Result)
	case StatusFailed:
		msg := outcome.ErrorMessage
		p.ErrorMessage = &msg
	}
}

// Transition validates and applies a status change in one call.
func (p *ValidationProcess) Transition(next Status, outcome Outcome, now time.Time) error {
	if err := p.CanTransition(next, outcome); err != nil {
		return err
	}
	p.ApplyTransition(next, outcome, now)
	return nil
}

// Clone returns a snapshot that shares no mutable state with p.
func (p *ValidationProcess) Clone() *ValidationProcess {
	if p == nil {
		return nil
	}
	c := *p
	c.Contact = cloneString(p.Contact)
	c.ErrorMessage = cloneString(p.ErrorMessage)
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		c.UpdatedAt = &t
	}
	c.Result = maps.Clone(p.Result)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
