package realtime

import (
	"testing"

	"github.com/google/uuid"

	"github.com/garagego/api/models"
)

func TestHubBroadcastReachesSubscribers(t *testing.T) {
	hub := NewHub()
	conversationID := uuid.New()

	first := hub.Subscribe(conversationID)
	second := hub.Subscribe(conversationID)
	other := hub.Subscribe(uuid.New())
	defer hub.Unsubscribe(other)

	ev := Event{Type: "message", Message: models.Message{ID: uuid.New(), ConversationID: conversationID}}
	hub.Broadcast(conversationID, ev)

	for i, sub := range []*Subscription{first, second} {
		select {
		case got := <-sub.C:
			if got.Message.ID != ev.Message.ID {
				t.Errorf("subscriber %d got wrong message", i)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
	select {
	case <-other.C:
		t.Error("broadcast leaked into another conversation's channel")
	default:
	}

	hub.Unsubscribe(first)
	hub.Unsubscribe(second)
	if n := hub.SubscriberCount(conversationID); n != 0 {
		t.Errorf("SubscriberCount = %d after unsubscribing everyone", n)
	}
}

func TestHubUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(uuid.New())

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	if _, ok := <-sub.C; ok {
		t.Error("channel not closed after unsubscribe")
	}
}

func TestHubBroadcastToEmptyConversation(t *testing.T) {
	hub := NewHub()
	// must not block or panic with nobody listening
	hub.Broadcast(uuid.New(), Event{Type: "message"})
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()
	conversationID := uuid.New()
	sub := hub.Subscribe(conversationID)
	defer hub.Unsubscribe(sub)

	// fill the buffer and then some; the hub must never block the sender
	for i := 0; i < sendBuffer+10; i++ {
		hub.Broadcast(conversationID, Event{Type: "message", Message: models.Message{ID: uuid.New()}})
	}

	if len(sub.C) != sendBuffer {
		t.Errorf("buffered %d events, want %d with the rest dropped", len(sub.C), sendBuffer)
	}
}
