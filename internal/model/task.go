package model

import "time"

// NotificationKind classifies a notification record.
type NotificationKind string

const (
	// KindReminder is the scheduled "time to do this" notification.
	KindReminder NotificationKind = "reminder"

	// KindCompletion is the fan-out sent to a partner when a task is done.
	KindCompletion NotificationKind = "completion"
)

// Task is a scheduled reminder item owned by a single user.
//
// Completed is monotonic: once a task has been completed it never goes back
// to pending through this pipeline, and CompletedAt is set exactly when
// Completed is true.
type Task struct {
	// ID is the internal unique identifier for this task.
	ID string `json:"id" db:"id"`

	// UserID is the owning user. Only the owner may mutate the task.
	UserID string `json:"user_id" db:"user_id"`

	// Title is the human-readable summary. Must be non-empty.
	Title string `json:"title" db:"title"`

	// Description is the optional body text.
	Description string `json:"description" db:"description"`

	// ScheduledTime is the absolute time the task is due.
	ScheduledTime time.Time `json:"scheduled_time" db:"scheduled_time"`

	// Completed reports whether the task has been finished.
	Completed bool `json:"completed" db:"completed"`

	// CompletedAt is when the task was completed. Present iff Completed.
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	// CreatedAt is when the task was created. Immutable.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// NotificationSent tracks whether the scheduled reminder has already
	// fired for this task. Distinct from the partner completion fan-out.
	NotificationSent bool `json:"notification_sent" db:"notification_sent"`
}

// TaskPatch holds the fields that may be merged into an existing task.
// Nil fields are left untouched. Completion is deliberately not part of
// the patch; it goes through Store.CompleteTask only.
type TaskPatch struct {
	Title            *string
	Description      *string
	ScheduledTime    *time.Time
	NotificationSent *bool
}

// IsEmpty reports whether the patch carries no changes.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil &&
		p.ScheduledTime == nil && p.NotificationSent == nil
}
