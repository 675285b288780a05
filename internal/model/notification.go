package model

import "time"

// NotificationRecord is the durable, append-only log entry for a
// notification that was (logically) sent. Records are created once per
// dispatch and never mutated or retried afterwards.
type NotificationRecord struct {
	// ID is the unique identifier for this record.
	ID string `json:"id" db:"id"`

	// UserID is the recipient of the notification.
	UserID string `json:"user_id" db:"user_id"`

	// TaskID links this record to the originating task.
	TaskID string `json:"task_id" db:"task_id"`

	// Kind distinguishes scheduled reminders from completion fan-outs.
	Kind NotificationKind `json:"kind" db:"kind"`

	// Message is the human-readable notification text.
	Message string `json:"message" db:"message"`

	// SentAt is when this record was created.
	SentAt time.Time `json:"sent_at" db:"sent_at"`
}
