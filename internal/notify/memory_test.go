package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/jihoon-ko/pairtask/internal/model"
)

func TestMemoryChannel_NotifySubscriber(t *testing.T) {
	c := NewMemoryChannel()
	defer c.Close()

	sub, err := c.Subscribe("user-b")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	payload := Payload{
		Title:  "할일 완료 알림 ✅",
		Body:   `상대방이 "설거지하기"을(를) 완료했습니다!`,
		TaskID: "task-1",
		Kind:   model.KindCompletion,
	}
	if err := c.Notify(context.Background(), "user-b", payload); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	select {
	case got := <-sub.Payloads():
		if got != payload {
			t.Errorf("expected %+v, got %+v", payload, got)
		}
	default:
		t.Fatal("expected a delivered payload")
	}
}

func TestMemoryChannel_UnreachableRecipient(t *testing.T) {
	c := NewMemoryChannel()
	defer c.Close()

	err := c.Notify(context.Background(), "nobody-listening", Payload{TaskID: "task-1"})
	if !errors.Is(err, ErrRecipientUnreachable) {
		t.Fatalf("expected ErrRecipientUnreachable, got %v", err)
	}
}

func TestMemoryChannel_Unsubscribe(t *testing.T) {
	c := NewMemoryChannel()
	defer c.Close()

	sub, err := c.Subscribe("user-b")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	sub.Unsubscribe()

	if _, open := <-sub.Payloads(); open {
		t.Error("expected payload channel closed after unsubscribe")
	}

	err = c.Notify(context.Background(), "user-b", Payload{TaskID: "task-1"})
	if !errors.Is(err, ErrRecipientUnreachable) {
		t.Fatalf("expected ErrRecipientUnreachable after unsubscribe, got %v", err)
	}
}

func TestMemoryChannel_Closed(t *testing.T) {
	c := NewMemoryChannel()
	sub, err := c.Subscribe("user-b")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	c.Close()

	if _, open := <-sub.Payloads(); open {
		t.Error("expected payload channel closed after Close")
	}
	if err := c.Notify(context.Background(), "user-b", Payload{}); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("expected ErrChannelClosed, got %v", err)
	}
	if _, err := c.Subscribe("user-b"); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("expected ErrChannelClosed on Subscribe, got %v", err)
	}
}

func TestMemoryChannel_DropsOnFullBuffer(t *testing.T) {
	c := NewMemoryChannel()
	defer c.Close()

	sub, err := c.Subscribe("user-b")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	// Overfill the buffer; the overflow must be dropped, not block.
	for i := 0; i < defaultBufferSize+5; i++ {
		if err := c.Notify(context.Background(), "user-b", Payload{TaskID: "task"}); err != nil {
			t.Fatalf("Notify %d: %v", i, err)
		}
	}

	received := 0
	for {
		select {
		case <-sub.Payloads():
			received++
			continue
		default:
		}
		break
	}
	if received != defaultBufferSize {
		t.Errorf("expected %d buffered payloads, got %d", defaultBufferSize, received)
	}
}
