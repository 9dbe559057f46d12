package realtime

import (
	"sync"

	"github.com/garagego/api/models"
	"github.com/google/uuid"
)

const sendBuffer = 64

// Event is what subscribers receive when a row lands in a conversation
type Event struct {
	Type    string         `json:"type"`
	Message models.Message `json:"message"`
}

// Subscription is one listener on a conversation's channel. Events arrive on
// C; the hub never blocks on a slow subscriber, it drops instead.
type Subscription struct {
	ConversationID uuid.UUID
	C              chan Event

	hub    *Hub
	closed bool
}

// Hub fans conversation events out to every open subscription on that
// conversation. It owns the only shared mutable state in the process.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: map[uuid.UUID]map[*Subscription]struct{}{},
	}
}

func (h *Hub) Subscribe(conversationID uuid.UUID) *Subscription {
	s := &Subscription{
		ConversationID: conversationID,
		C:              make(chan Event, sendBuffer),
		hub:            h,
	}

	h.mu.Lock()
	if h.subs[conversationID] == nil {
		h.subs[conversationID] = map[*Subscription]struct{}{}
	}
	h.subs[conversationID][s] = struct{}{}
	h.mu.Unlock()

	return s
}

// Unsubscribe detaches the subscription and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	if set, ok := h.subs[s.ConversationID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.ConversationID)
		}
	}
	close(s.C)
}

// Broadcast delivers an event to every subscription on the conversation.
// Slow subscribers are skipped rather than blocking the sender.
func (h *Hub) Broadcast(conversationID uuid.UUID, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs[conversationID] {
		select {
		case s.C <- ev:
		default:
			// subscriber queue full, drop
		}
	}
}

// SubscriberCount reports how many listeners a conversation currently has
func (h *Hub) SubscriberCount(conversationID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[conversationID])
}
