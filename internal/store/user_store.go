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

// CreateUser inserts a new user. Generates a UUID if ID is empty. The
// partner link is stored as given; maintaining its symmetry is the account
// layer's job, this store only persists and reads it.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, partner_id, partner_notify, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.PartnerID,
		boolToInt(user.PartnerNotify), user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a single user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM users WHERE id = ?", id)

	var (
		user      model.User
		notifyInt int
		partnerID *string
	)
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &partnerID,
		&notifyInt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFoundf("user %s", id)
		}
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}

	user.PartnerID = partnerID
	user.PartnerNotify = notifyInt != 0

	return &user, nil
}

// SetPartnerID writes the partner link on a user row. Link maintenance
// belongs to the account layer, so this is deliberately not part of the
// Store interface; the pipeline itself only ever reads the link.
func (s *SQLiteStore) SetPartnerID(ctx context.Context, userID, partnerID string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET partner_id = ? WHERE id = ?", partnerID, userID)
	if err != nil {
		return fmt.Errorf("linking partner for user %s: %w", userID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return model.NotFoundf("user %s", userID)
	}
	return nil
}

// PartnerID resolves the linked partner of userID. An unlinked user yields
// an empty string; only an unknown user is an error.
func (s *SQLiteStore) PartnerID(ctx context.Context, userID string) (string, error) {
	var partnerID sql.NullString
	err := s.db.GetContext(ctx, &partnerID,
		"SELECT partner_id FROM users WHERE id = ?", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.NotFoundf("user %s", userID)
		}
		return "", fmt.Errorf("resolving partner for user %s: %w", userID, err)
	}

	if !partnerID.Valid {
		return "", nil
	}
	return partnerID.String, nil
}

// PartnerNotificationEnabled reads the user's live-channel preference flag.
func (s *SQLiteStore) PartnerNotificationEnabled(ctx context.Context, userID string) (bool, error) {
	var notifyInt int
	err := s.db.GetContext(ctx, &notifyInt,
		"SELECT partner_notify FROM users WHERE id = ?", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, model.NotFoundf("user %s", userID)
		}
		return false, fmt.Errorf("reading notification preference for user %s: %w", userID, err)
	}

	return notifyInt != 0, nil
}
