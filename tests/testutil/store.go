package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jihoon-ko/pairtask/internal/model"
	"github.com/jihoon-ko/pairtask/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// CreateUser inserts a user and returns it.
func CreateUser(t *testing.T, s store.Store, user model.User) *model.User {
	t.Helper()

	created, err := s.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return created
}

// CreateCouple inserts two mutually linked users and returns them.
func CreateCouple(t *testing.T, s store.Store) (*model.User, *model.User) {
	t.Helper()

	a := CreateUser(t, s, model.User{ID: "user-a", Email: "a@example.com", Name: "A"})
	bPartner := a.ID
	b := CreateUser(t, s, model.User{
		ID: "user-b", Email: "b@example.com", Name: "B", PartnerID: &bPartner,
	})

	// Close the loop so the link is symmetric.
	linkPartner(t, s, a.ID, b.ID)
	a.PartnerID = &b.ID

	return a, b
}

// linkPartner sets the partner link on an existing user row. Link
// maintenance is outside the pipeline's contract, so tests reach through
// a dedicated store hook instead of a public operation.
func linkPartner(t *testing.T, s store.Store, userID, partnerID string) {
	t.Helper()

	type partnerLinker interface {
		SetPartnerID(ctx context.Context, userID, partnerID string) error
	}

	linker, ok := s.(partnerLinker)
	if !ok {
		t.Fatalf("store %T does not support partner linking", s)
	}
	if err := linker.SetPartnerID(context.Background(), userID, partnerID); err != nil {
		t.Fatalf("linking partner: %v", err)
	}
}

// CreateTask inserts a task for the given owner and returns it.
func CreateTask(t *testing.T, s store.Store, ownerID, title string, scheduled time.Time) *model.Task {
	t.Helper()

	created, err := s.CreateTask(context.Background(), model.Task{
		UserID:        ownerID,
		Title:         title,
		ScheduledTime: scheduled,
	})
	if err != nil {
		t.Fatalf("creating test task: %v", err)
	}
	return created
}
