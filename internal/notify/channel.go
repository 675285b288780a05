// Package notify owns notification fan-out: durable notification records
// plus best-effort live delivery over an optional channel.
//
// The persisted record is the source of truth. A live channel, when
// present, only improves latency for a recipient whose device is currently
// reachable; its absence or failure is a normal code path.
package notify

import (
	"context"
	"errors"

	"github.com/jihoon-ko/pairtask/internal/model"
)

// Common channel errors.
var (
	ErrChannelClosed        = errors.New("notification channel closed")
	ErrRecipientUnreachable = errors.New("recipient unreachable")
)

// Payload is the live notification content pushed to a recipient's device.
type Payload struct {
	// Title is the short heading shown by the device.
	Title string `json:"title"`

	// Body is the notification text.
	Body string `json:"body"`

	// TaskID links the notification back to its task.
	TaskID string `json:"task_id"`

	// Kind mirrors the persisted record kind.
	Kind model.NotificationKind `json:"kind"`
}

// Channel delivers live notifications to a user right now, fire-and-forget.
// Implementations must not be relied on for durability; a failed or dropped
// delivery is acceptable because the notification record already exists.
type Channel interface {
	// Notify pushes a payload to the given recipient. Returns an error
	// when the recipient is unreachable or the channel is down; callers
	// treat any error as advisory.
	Notify(ctx context.Context, userID string, payload Payload) error

	// Close shuts the channel down.
	Close() error
}
