package store

import (
	"context"
	"time"

	"github.com/jihoon-ko/pairtask/internal/model"
)

// Store defines the persistence interface for tasks, users (including the
// partner link), notification records, and push tokens.
type Store interface {
	// === Tasks ===

	// CreateTask persists a new task, assigning its ID and creation time.
	// Fails with model.ErrValidation if the title is empty or the
	// scheduled time is unset.
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)

	// ListTasks returns the tasks owned by userID, ascending by scheduled
	// time. An empty slice is a valid result; model.ErrNotFound is
	// returned only when the user itself does not exist.
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)

	// GetTaskByID returns a single task, or model.ErrNotFound.
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)

	// UpdateTask merges only the fields provided in patch. The completion
	// state cannot be changed through this path; use CompleteTask.
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)

	// CompleteTask marks a task completed, setting its completion time
	// once. Completing an already-completed task returns the existing
	// record unchanged.
	CompleteTask(ctx context.Context, id string) (*model.Task, error)

	// DeleteTask removes a task permanently. Deleting an absent task is
	// treated as success.
	DeleteTask(ctx context.Context, id string) error

	// DueTasks returns uncompleted tasks whose scheduled time has passed
	// and whose reminder has not fired yet, oldest first.
	DueTasks(ctx context.Context, before time.Time) ([]model.Task, error)

	// === Users / partner directory ===

	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// PartnerID resolves the linked partner of userID. An unlinked user
	// yields an empty string with no error; an unknown user yields
	// model.ErrNotFound.
	PartnerID(ctx context.Context, userID string) (string, error)

	// PartnerNotificationEnabled reads the user's live-channel preference
	// flag. It never affects persistence of notification records.
	PartnerNotificationEnabled(ctx context.Context, userID string) (bool, error)

	// === Notification records (append-only) ===

	CreateNotification(ctx context.Context, rec model.NotificationRecord) (*model.NotificationRecord, error)
	ListNotifications(ctx context.Context, recipientID string) ([]model.NotificationRecord, error)

	// === Push tokens ===

	UpsertPushToken(ctx context.Context, token model.PushToken) error
	PushToken(ctx context.Context, userID string) (*model.PushToken, error)
}
