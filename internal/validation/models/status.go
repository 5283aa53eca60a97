package models

// Status is the lifecycle state of a ValidationProcess.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions can follow s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo enforces the forward-only lifecycle:
// pending -> in_progress -> completed | failed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// Message is the human-readable status line shown to API clients.
func (s Status) Message(errorMessage *string) string {
	switch s {
	case StatusPending:
		return "Validation process is pending"
	case StatusInProgress:
		return "Validation process is in progress"
	case StatusCompleted:
		return "Validation process completed successfully"
	case StatusFailed:
		reason := "Unknown error"
		if errorMessage != nil && *errorMessage != "" {
			reason = *errorMessage
		}
		return "Validation process failed: " + reason
	default:
		return "Unknown status"
	}
}
