package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jihoon-ko/pairtask/internal/model"
	"github.com/jihoon-ko/pairtask/internal/store"
)

// Message templates. The task title is embedded verbatim so the recipient
// sees exactly what was completed or is due.
func completionMessage(title string) string {
	return fmt.Sprintf("상대방이 %q을(를) 완료했습니다!", title)
}

func reminderMessage(title string) string {
	return fmt.Sprintf("%q 할 시간이에요!", title)
}

// Live notification headings.
const (
	completionPushTitle = "할일 완료 알림 ✅"
	reminderPushTitle   = "할일 시간이에요! ⏰"
)

// Dispatcher creates durable notification records and attempts best-effort
// live delivery. The record is the source of truth; a nil or failing live
// channel never fails a dispatch that persisted its record.
type Dispatcher struct {
	store   store.Store
	channel Channel // optional, nil when no live channel is configured
	logger  *slog.Logger
}

// NewDispatcher creates a Dispatcher. channel may be nil.
func NewDispatcher(s store.Store, channel Channel, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{store: s, channel: channel, logger: logger}
}

// DispatchCompletion fans a completed task out to the partner. An empty
// recipient is a no-op success: a task owner with no linked partner simply
// produces no notification.
func (d *Dispatcher) DispatchCompletion(
	ctx context.Context,
	task *model.Task,
	recipientID string,
) (*model.NotificationRecord, error) {
	if recipientID == "" {
		return nil, nil
	}

	msg := completionMessage(task.Title)

	rec, err := d.store.CreateNotification(ctx, model.NotificationRecord{
		UserID:  recipientID,
		TaskID:  task.ID,
		Kind:    model.KindCompletion,
		Message: msg,
	})
	if err != nil {
		return nil, model.Dispatchf("persisting completion record for task %s: %v", task.ID, err)
	}

	d.pushLive(ctx, recipientID, Payload{
		Title:  completionPushTitle,
		Body:   msg,
		TaskID: task.ID,
		Kind:   model.KindCompletion,
	})

	return rec, nil
}

// DispatchReminder sends the scheduled reminder for a due task.
func (d *Dispatcher) DispatchReminder(
	ctx context.Context,
	task *model.Task,
	recipientID string,
) (*model.NotificationRecord, error) {
	if recipientID == "" {
		return nil, nil
	}

	msg := reminderMessage(task.Title)

	rec, err := d.store.CreateNotification(ctx, model.NotificationRecord{
		UserID:  recipientID,
		TaskID:  task.ID,
		Kind:    model.KindReminder,
		Message: msg,
	})
	if err != nil {
		return nil, model.Dispatchf("persisting reminder record for task %s: %v", task.ID, err)
	}

	d.pushLive(ctx, recipientID, Payload{
		Title:  reminderPushTitle,
		Body:   msg,
		TaskID: task.ID,
		Kind:   model.KindReminder,
	})

	return rec, nil
}

// PartnerNotificationEnabled reads the recipient's live-channel preference.
// It only shapes caller-facing wording and partner reminders; completion
// records are persisted regardless.
func (d *Dispatcher) PartnerNotificationEnabled(ctx context.Context, userID string) (bool, error) {
	return d.store.PartnerNotificationEnabled(ctx, userID)
}

// pushLive attempts the advisory live delivery. Failures are logged and
// dropped; the persisted record already carries the notification.
func (d *Dispatcher) pushLive(ctx context.Context, userID string, payload Payload) {
	if d.channel == nil {
		return
	}
	if err := d.channel.Notify(ctx, userID, payload); err != nil {
		d.logger.Debug("live notification skipped",
			"user_id", userID,
			"task_id", payload.TaskID,
			"kind", string(payload.Kind),
			"error", err)
	}
}
