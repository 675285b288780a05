// Package lifecycle orchestrates the task state transitions and the
// partner fan-out that follows a completion.
//
// The core rule: the durable state change is authoritative, the fan-out is
// advisory. Once the store has marked a task completed, the caller sees
// success no matter what happens to the notification path.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jihoon-ko/pairtask/internal/model"
	"github.com/jihoon-ko/pairtask/internal/notify"
	"github.com/jihoon-ko/pairtask/internal/store"
)

// Coordinator drives the "complete task → resolve partner → dispatch
// notification → report result" pipeline and the owner-scoped task CRUD
// around it.
type Coordinator struct {
	store      store.Store
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(s store.Store, d *notify.Dispatcher, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{store: s, dispatcher: d, logger: logger}
}

// CompletionResult is the authoritative outcome of a completion. Callers
// refresh their views from Task instead of relying on shared caches.
type CompletionResult struct {
	// Task is the updated task record after the transition.
	Task *model.Task

	// PartnerID is the linked partner the fan-out targeted, or empty when
	// the owner has no partner.
	PartnerID string

	// PartnerNotified reports the partner's live-notification preference
	// at completion time. It shapes caller-facing wording only; the
	// durable record exists whenever PartnerID is set.
	PartnerNotified bool
}

// CompleteTask transitions a task to completed and fans the completion out
// to the owner's partner.
//
// Store failures before or during the transition propagate untouched.
// Anything that goes wrong after the task is durably completed is logged
// and swallowed: "completed, possibly without telling the partner" is a
// success.
func (c *Coordinator) CompleteTask(
	ctx context.Context,
	taskID string,
	actingUserID string,
) (*CompletionResult, error) {
	task, err := c.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != actingUserID {
		return nil, model.Forbiddenf("task %s is not owned by user %s", taskID, actingUserID)
	}

	// Calling complete twice is always safe: the second call observes the
	// completed task and returns it with no further side effects.
	if task.Completed {
		return &CompletionResult{Task: task}, nil
	}

	task, err = c.store.CompleteTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{Task: task}

	partnerID, err := c.store.PartnerID(ctx, task.UserID)
	if err != nil {
		c.logger.Warn("partner lookup failed after completion",
			"task_id", task.ID, "user_id", task.UserID, "error", err)
		return result, nil
	}
	if partnerID == "" {
		return result, nil
	}
	result.PartnerID = partnerID

	if _, err := c.dispatcher.DispatchCompletion(ctx, task, partnerID); err != nil {
		c.logger.Warn("completion fan-out failed",
			"task_id", task.ID, "partner_id", partnerID, "error", err)
		return result, nil
	}

	enabled, err := c.dispatcher.PartnerNotificationEnabled(ctx, partnerID)
	if err != nil {
		c.logger.Warn("partner preference read failed",
			"partner_id", partnerID, "error", err)
		return result, nil
	}
	result.PartnerNotified = enabled

	return result, nil
}

// CreateTask validates and persists a new task for its owner.
func (c *Coordinator) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if _, err := c.store.GetUserByID(ctx, task.UserID); err != nil {
		return nil, err
	}
	return c.store.CreateTask(ctx, task)
}

// ListTasks returns the acting user's tasks ascending by scheduled time.
func (c *Coordinator) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	return c.store.ListTasks(ctx, userID)
}

// UpdateTask merges the patch into a task after checking ownership.
func (c *Coordinator) UpdateTask(
	ctx context.Context,
	taskID string,
	actingUserID string,
	patch model.TaskPatch,
) (*model.Task, error) {
	task, err := c.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != actingUserID {
		return nil, model.Forbiddenf("task %s is not owned by user %s", taskID, actingUserID)
	}

	return c.store.UpdateTask(ctx, taskID, patch)
}

// DeleteTask removes a task after checking ownership. Deleting a task that
// is already gone is a success.
func (c *Coordinator) DeleteTask(ctx context.Context, taskID string, actingUserID string) error {
	task, err := c.store.GetTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}
	if task.UserID != actingUserID {
		return model.Forbiddenf("task %s is not owned by user %s", taskID, actingUserID)
	}

	return c.store.DeleteTask(ctx, taskID)
}
