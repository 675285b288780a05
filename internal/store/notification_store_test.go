package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jihoon-ko/pairtask/internal/model"
	"github.com/jihoon-ko/pairtask/tests/testutil"
)

func TestCreateNotification(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})
	task := testutil.CreateTask(t, s, owner.ID, "설거지하기", time.Now())

	rec, err := s.CreateNotification(ctx, model.NotificationRecord{
		UserID:  "partner",
		TaskID:  task.ID,
		Kind:    model.KindCompletion,
		Message: `상대방이 "설거지하기"을(를) 완료했습니다!`,
	})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected generated ID")
	}
	if rec.SentAt.IsZero() {
		t.Error("expected sent_at to be stamped")
	}
}

func TestListNotifications_NewestFirst(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, s, model.User{ID: "owner"})
	task := testutil.CreateTask(t, s, owner.ID, "빨래 널기", time.Now())

	base := time.Now().UTC().Truncate(time.Second)
	for i, kind := range []model.NotificationKind{model.KindReminder, model.KindCompletion} {
		_, err := s.CreateNotification(ctx, model.NotificationRecord{
			UserID:  "partner",
			TaskID:  task.ID,
			Kind:    kind,
			Message: "msg",
			SentAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
	}
	// A record for a different recipient must not leak into the listing.
	if _, err := s.CreateNotification(ctx, model.NotificationRecord{
		UserID: "someone-else", TaskID: task.ID,
		Kind: model.KindReminder, Message: "other",
	}); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	records, err := s.ListNotifications(ctx, "partner")
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Kind != model.KindCompletion || records[1].Kind != model.KindReminder {
		t.Errorf("expected newest-first ordering, got %s then %s",
			records[0].Kind, records[1].Kind)
	}
}
