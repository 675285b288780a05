package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jihoon-ko/pairtask/internal/model"
)

// CreateNotification appends a new notification record. Records are
// insert-only; nothing ever updates or retries them afterwards.
func (s *SQLiteStore) CreateNotification(
	ctx context.Context,
	rec model.NotificationRecord,
) (*model.NotificationRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, task_id, kind, message, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.TaskID, string(rec.Kind), rec.Message,
		rec.SentAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	return &rec, nil
}

// ListNotifications retrieves the notification records for a recipient,
// newest first.
func (s *SQLiteStore) ListNotifications(
	ctx context.Context,
	recipientID string,
) ([]model.NotificationRecord, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM notifications WHERE user_id = ? ORDER BY sent_at DESC",
		recipientID)
	if err != nil {
		return nil, fmt.Errorf("querying notifications for user %s: %w", recipientID, err)
	}
	defer rows.Close()

	var records []model.NotificationRecord
	for rows.Next() {
		var (
			rec  model.NotificationRecord
			kind string
		)
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.TaskID, &kind,
			&rec.Message, &rec.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		rec.Kind = model.NotificationKind(kind)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// UpsertPushToken inserts or replaces the push registration for a user.
func (s *SQLiteStore) UpsertPushToken(ctx context.Context, token model.PushToken) error {
	token.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO push_tokens (user_id, token, platform, updated_at)
		VALUES (?, ?, ?, ?)`,
		token.UserID, token.Token, token.Platform, token.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting push token for user %s: %w", token.UserID, err)
	}

	return nil
}

// PushToken retrieves the push registration for a user, or model.ErrNotFound
// when the user has never registered a device.
func (s *SQLiteStore) PushToken(ctx context.Context, userID string) (*model.PushToken, error) {
	var token model.PushToken
	err := s.db.GetContext(ctx, &token,
		"SELECT * FROM push_tokens WHERE user_id = ?", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("push token for user %s", userID)
		}
		return nil, fmt.Errorf("getting push token for user %s: %w", userID, err)
	}

	return &token, nil
}
