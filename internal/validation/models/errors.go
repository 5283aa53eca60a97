package models

import (
	dErrors "recordcheck/pkg/domain-errors"
	"recordcheck/pkg/platform/sentinel"
)

var (
	// ErrSubjectNotFound is returned when a well-formed subject id has no canonical record.
	ErrSubjectNotFound = dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "subject not found")
	// ErrProcessNotFound is returned when a process id is unknown to the process store.
	ErrProcessNotFound = dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "validation process not found")
)

// ExecutionMessageSubjectMissing is recorded when the subject record disappears between
// process creation and execution.
const ExecutionMessageSubjectMissing = "subject not found during execution"
