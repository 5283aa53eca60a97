package domain

import (
	"regexp"

	"github.com/google/uuid"

	dErrors "recordcheck/pkg/domain-errors"
)

// SubjectID identifies the canonical record a validation runs against.
//
// The accepted shape is the textual 8-4-4-4-12 hexadecimal form only, 36 characters,
// case-insensitive. uuid.Parse is deliberately not used here: it also accepts the
// urn:uuid:, braced and hyphen-less forms.
type SubjectID string

// ProcessID identifies a single validation run. Values are generated by process stores.
type ProcessID string

var subjectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

const subjectIDLength = 36

var (
	// ErrMissingIdentifier is returned when no identifier was supplied at all.
	ErrMissingIdentifier = dErrors.New(dErrors.CodeBadRequest, "subject identifier is required")
	// ErrInvalidIdentifierFormat is returned when an identifier does not match the canonical shape.
	ErrInvalidIdentifierFormat = dErrors.New(dErrors.CodeInvalidInput, "invalid identifier format, expected 8-4-4-4-12 hexadecimal")
)

// IsSubjectIDFormat reports whether s has the canonical identifier shape.
func IsSubjectIDFormat(s string) bool {
	return len(s) == subjectIDLength && subjectIDPattern.MatchString(s)
}

// ParseSubjectID validates s and returns it as a SubjectID. The original casing is kept:
// records are stored under the identifier exactly as issued.
func ParseSubjectID(s string) (SubjectID, error) {
	if !IsSubjectIDFormat(s) {
		return "", ErrInvalidIdentifierFormat
	}
	return SubjectID(s), nil
}

// NewProcessID allocates a fresh random process identifier.
func NewProcessID() ProcessID {
	return ProcessID(uuid.NewString())
}

func (id SubjectID) String() string { return string(id) }

func (id ProcessID) String() string { return string(id) }

// IsNil returns true if the identifier is empty.
func (id ProcessID) IsNil() bool { return id == "" }
