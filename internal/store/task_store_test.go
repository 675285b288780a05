package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jihoon-ko/pairtask/internal/model"
	"github.com/jihoon-ko/pairtask/tests/testutil"
)

func TestCreateTask_Validation(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})

	tests := []struct {
		name string
		task model.Task
	}{
		{
			name: "empty title",
			task: model.Task{UserID: owner.ID, Title: "   ", ScheduledTime: time.Now()},
		},
		{
			name: "zero scheduled time",
			task: model.Task{UserID: owner.ID, Title: "설거지하기"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateTask(ctx, tt.task)
			if !errors.Is(err, model.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateTask_Defaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})

	created, err := s.CreateTask(ctx, model.Task{
		UserID:        owner.ID,
		Title:         "빨래 널기",
		ScheduledTime: time.Now().Add(time.Hour),
		Completed:     true, // must be ignored; new tasks always start pending
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if created.ID == "" {
		t.Error("expected generated ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}
	if created.Completed {
		t.Error("new task must not start completed")
	}
	if created.CompletedAt != nil {
		t.Error("new task must not carry completed_at")
	}
	if created.NotificationSent {
		t.Error("new task must not start with notification_sent")
	}
}

func TestListTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})
	other := testutil.CreateUser(t, s, model.User{ID: "other"})

	base := time.Now().UTC().Truncate(time.Second)
	testutil.CreateTask(t, s, owner.ID, "third", base.Add(3*time.Hour))
	testutil.CreateTask(t, s, owner.ID, "first", base.Add(1*time.Hour))
	testutil.CreateTask(t, s, owner.ID, "second", base.Add(2*time.Hour))
	testutil.CreateTask(t, s, other.ID, "not mine", base)

	tasks, err := s.ListTasks(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if tasks[i].Title != want {
			t.Errorf("task %d: expected %q, got %q", i, want, tasks[i].Title)
		}
	}
}

func TestListTasks_EmptyAndUnknownUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})

	tasks, err := s.ListTasks(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListTasks on empty store: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(tasks))
	}

	_, err = s.ListTasks(ctx, "nobody")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not-found for unknown user, got %v", err)
	}
}

func TestUpdateTask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})
	task := testutil.CreateTask(t, s, owner.ID, "원래 제목",
		time.Now().UTC().Truncate(time.Second).Add(time.Hour))

	newTitle := "바뀐 제목"
	updated, err := s.UpdateTask(ctx, task.ID, model.TaskPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("expected title %q, got %q", newTitle, updated.Title)
	}
	if updated.Description != task.Description {
		t.Error("description must be untouched by a title-only patch")
	}
	if !updated.ScheduledTime.Equal(task.ScheduledTime) {
		t.Error("scheduled time must be untouched by a title-only patch")
	}

	blank := "  "
	if _, err := s.UpdateTask(ctx, task.ID, model.TaskPatch{Title: &blank}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}

	if _, err := s.UpdateTask(ctx, "missing", model.TaskPatch{Title: &newTitle}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not-found for unknown task, got %v", err)
	}
}

func TestCompleteTask_Idempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})
	task := testutil.CreateTask(t, s, owner.ID, "설거지하기", time.Now())

	first, err := s.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !first.Completed {
		t.Fatal("task must be completed")
	}
	if first.CompletedAt == nil {
		t.Fatal("completed_at must be set")
	}

	second, err := s.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("second CompleteTask: %v", err)
	}
	if !second.Completed {
		t.Fatal("task must stay completed")
	}
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("completed_at must not change: first %v, second %v",
			first.CompletedAt, second.CompletedAt)
	}

	_, err = s.CompleteTask(ctx, "missing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDeleteTask_Idempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})
	task := testutil.CreateTask(t, s, owner.ID, "지울 일", time.Now())

	if err := s.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := s.GetTaskByID(ctx, task.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected task gone, got %v", err)
	}

	// Deleting again, or deleting something that never existed, is success.
	if err := s.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("repeated DeleteTask: %v", err)
	}
	if err := s.DeleteTask(ctx, "never-existed"); err != nil {
		t.Fatalf("DeleteTask on unknown id: %v", err)
	}
}

func TestDueTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})

	now := time.Now().UTC()
	due := testutil.CreateTask(t, s, owner.ID, "due", now.Add(-time.Minute))
	testutil.CreateTask(t, s, owner.ID, "future", now.Add(time.Hour))
	done := testutil.CreateTask(t, s, owner.ID, "done", now.Add(-2*time.Minute))
	if _, err := s.CompleteTask(ctx, done.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	reminded := testutil.CreateTask(t, s, owner.ID, "reminded", now.Add(-3*time.Minute))
	sent := true
	if _, err := s.UpdateTask(ctx, reminded.ID, model.TaskPatch{NotificationSent: &sent}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	tasks, err := s.DueTasks(ctx, now)
	if err != nil {
		t.Fatalf("DueTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 due task, got %d", len(tasks))
	}
	if tasks[0].ID != due.ID {
		t.Errorf("expected due task %s, got %s", due.ID, tasks[0].ID)
	}
}
