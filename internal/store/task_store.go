package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jihoon-ko/pairtask/internal/model"
)

// CreateTask inserts a new task. Generates a UUID if ID is empty and stamps
// the creation time. Completion state always starts false.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, model.Validationf("task title must not be empty")
	}
	if task.ScheduledTime.IsZero() {
		return nil, model.Validationf("task scheduled time must be set")
	}

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now().UTC()
	task.Completed = false
	task.CompletedAt = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, user_id, title, description, scheduled_time,
			completed, completed_at, created_at, notification_sent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Description,
		task.ScheduledTime.UTC(),
		boolToInt(task.Completed), task.CompletedAt, task.CreatedAt,
		boolToInt(task.NotificationSent),
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	return &task, nil
}

// ListTasks retrieves the tasks owned by userID, ascending by scheduled time.
// An empty result is valid; only an unknown user is an error.
func (s *SQLiteStore) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	var userCount int
	err := s.db.GetContext(ctx, &userCount,
		"SELECT COUNT(*) FROM users WHERE id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("checking user %s: %w", userID, err)
	}
	if userCount == 0 {
		return nil, model.NotFoundf("user %s", userID)
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM tasks WHERE user_id = ? ORDER BY scheduled_time ASC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for user %s: %w", userID, err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetTaskByID retrieves a single task by its ID.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM tasks WHERE id = ?", id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("task %s", id)
		}
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}

	return &task, nil
}

// UpdateTask merges only the provided patch fields into an existing task.
// The completion state is not reachable through this path.
func (s *SQLiteStore) UpdateTask(
	ctx context.Context,
	id string,
	patch model.TaskPatch,
) (*model.Task, error) {
	if patch.IsEmpty() {
		return s.GetTaskByID(ctx, id)
	}

	var sets []string
	var args []interface{}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, model.Validationf("task title must not be empty")
		}
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.ScheduledTime != nil {
		if patch.ScheduledTime.IsZero() {
			return nil, model.Validationf("task scheduled time must be set")
		}
		sets = append(sets, "scheduled_time = ?")
		args = append(args, patch.ScheduledTime.UTC())
	}
	if patch.NotificationSent != nil {
		sets = append(sets, "notification_sent = ?")
		args = append(args, boolToInt(*patch.NotificationSent))
	}

	args = append(args, id)
	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, model.NotFoundf("task %s", id)
	}

	return s.GetTaskByID(ctx, id)
}

// CompleteTask marks a task completed. Already-completed tasks are returned
// unchanged, so repeated calls are safe and never overwrite completed_at.
func (s *SQLiteStore) CompleteTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return task, nil
	}

	now := time.Now().UTC()

	// The completed = 0 guard keeps completed_at write-once even if two
	// callers race past the read above.
	_, err = s.db.ExecContext(ctx,
		"UPDATE tasks SET completed = 1, completed_at = ? WHERE id = ? AND completed = 0",
		now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("completing task %s: %w", id, err)
	}

	return s.GetTaskByID(ctx, id)
}

// DueTasks retrieves uncompleted tasks whose scheduled time is at or before
// the given instant and whose reminder has not fired yet, oldest first.
func (s *SQLiteStore) DueTasks(ctx context.Context, before time.Time) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT * FROM tasks
		WHERE completed = 0 AND notification_sent = 0 AND scheduled_time <= ?
		ORDER BY scheduled_time ASC`,
		before.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// DeleteTask removes a task by ID. Deleting an absent task is a no-op
// success, so deletion is idempotent.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// scanTask scans a task row from sqlx.Rows or sqlx.Row.
func scanTask(row interface{ Scan(dest ...interface{}) error }) (model.Task, error) {
	var (
		task         model.Task
		completedInt int
		notifiedInt  int
		completedAt  *time.Time
	)

	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.ScheduledTime,
		&completedInt, &completedAt, &task.CreatedAt, &notifiedInt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, err
		}
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.Completed = completedInt != 0
	task.NotificationSent = notifiedInt != 0
	task.CompletedAt = completedAt

	return task, nil
}
