// Package remind periodically scans for due tasks and fires their
// scheduled reminder notifications.
package remind

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jihoon-ko/pairtask/internal/model"
	"github.com/jihoon-ko/pairtask/internal/notify"
	"github.com/jihoon-ko/pairtask/internal/store"
)

// scanTimeout bounds a single reminder scan.
const scanTimeout = 30 * time.Second

// Scheduler runs the reminder scan on a cron schedule. Each due task gets
// its reminder at most once: the task is marked only after the owner's
// record is persisted, and a failed task is retried on the next tick.
type Scheduler struct {
	store      store.Store
	dispatcher *notify.Dispatcher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewScheduler creates a Scheduler firing on the given cron spec
// (e.g. "@every 1m").
func NewScheduler(
	s store.Store,
	d *notify.Dispatcher,
	schedule string,
	logger *slog.Logger,
) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sched := &Scheduler{
		store:      s,
		dispatcher: d,
		cron:       cron.New(),
		logger:     logger,
	}

	if _, err := sched.cron.AddFunc(schedule, sched.scan); err != nil {
		return nil, fmt.Errorf("parsing reminder schedule %q: %w", schedule, err)
	}

	return sched, nil
}

// Start begins the periodic scans.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once any
// in-flight scan has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// scan is the cron entry point.
func (s *Scheduler) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	if err := s.RunScan(ctx); err != nil {
		s.logger.Warn("reminder scan failed", "error", err)
	}
}

// RunScan fires reminders for every currently due task. Exported so a scan
// can be driven directly, outside the cron schedule.
func (s *Scheduler) RunScan(ctx context.Context) error {
	due, err := s.store.DueTasks(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("loading due tasks: %w", err)
	}

	for _, task := range due {
		if err := s.remind(ctx, task); err != nil {
			// Leave the task unmarked so the next tick retries it.
			s.logger.Warn("reminder dispatch failed",
				"task_id", task.ID, "error", err)
		}
	}

	return nil
}

// remind fires the reminder for one task: always to the owner, and to the
// linked partner only when the partner has opted in.
func (s *Scheduler) remind(ctx context.Context, task model.Task) error {
	if _, err := s.dispatcher.DispatchReminder(ctx, &task, task.UserID); err != nil {
		return err
	}

	partnerID, err := s.store.PartnerID(ctx, task.UserID)
	if err != nil {
		s.logger.Warn("partner lookup failed during reminder",
			"task_id", task.ID, "user_id", task.UserID, "error", err)
	} else if partnerID != "" {
		enabled, err := s.dispatcher.PartnerNotificationEnabled(ctx, partnerID)
		if err != nil {
			s.logger.Warn("partner preference read failed during reminder",
				"task_id", task.ID, "partner_id", partnerID, "error", err)
		} else if enabled {
			if _, err := s.dispatcher.DispatchReminder(ctx, &task, partnerID); err != nil {
				s.logger.Warn("partner reminder failed",
					"task_id", task.ID, "partner_id", partnerID, "error", err)
			}
		}
	}

	sent := true
	if _, err := s.store.UpdateTask(ctx, task.ID, model.TaskPatch{NotificationSent: &sent}); err != nil {
		return fmt.Errorf("marking reminder sent for task %s: %w", task.ID, err)
	}

	return nil
}
