package models

import "time"

// Audit event types.
const (
	EventUserRegistered       = "USER_REGISTERED"
	EventProjectSubmitted     = "PROJECT_SUBMITTED"
	EventProjectStatusChanged = "PROJECT_STATUS_CHANGED"
	EventCommentAdded         = "COMMENT_ADDED"
)

// AuditEvent is a single audit log entry.
type AuditEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	ActorID     string    `json:"actor_id,omitempty"`
	SubjectID   string    `json:"subject_id,omitempty"`
	Metadata    any       `json:"metadata,omitempty"`
}
