package services

import (
	apiError "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/garagego/api/realtime"
	"github.com/google/uuid"
)

// ThreadState tracks where an open thread view is in its lifecycle
type ThreadState int

const (
	ThreadUnloaded ThreadState = iota
	ThreadLoading
	ThreadLoaded
	ThreadUpdating
)

// Thread is one viewer's live window onto a conversation: the loaded history
// plus a subscription that keeps appending new messages until Close. A thread
// is owned by a single connection and is not safe for concurrent use.
type Thread struct {
	ConversationID uuid.UUID
	State          ThreadState

	messages []models.Message
	seen     map[uuid.UUID]struct{}
	sub      *realtime.Subscription
	hub      *realtime.Hub
}

// ThreadService opens live thread views over the chat service and the hub
type ThreadService interface {
	OpenThread(userID, conversationID uuid.UUID) (*Thread, *apiError.Error)
}

type threadService struct {
	chat ChatService
	hub  *realtime.Hub
}

func NewThreadService(chat ChatService, hub *realtime.Hub) ThreadService {
	return &threadService{chat: chat, hub: hub}
}

// OpenThread loads the ordered history, marks the counterpart's unread
// messages as read (inside GetThreadMessages, best-effort) and attaches a
// subscription for live appends. The caller must Close the thread when the
// view goes away or switches to another conversation.
func (s *threadService) OpenThread(userID, conversationID uuid.UUID) (*Thread, *apiError.Error) {
	t := &Thread{
		ConversationID: conversationID,
		State:          ThreadLoading,
		seen:           map[uuid.UUID]struct{}{},
		hub:            s.hub,
	}

	// subscribe before the history fetch: a message that lands in between is
	// waiting on the channel, and Append drops it if the fetch caught it too
	t.sub = s.hub.Subscribe(conversationID)

	messages, apiErr := s.chat.GetThreadMessages(userID, conversationID)
	if apiErr != nil {
		s.hub.Unsubscribe(t.sub)
		return nil, apiErr
	}
	for _, m := range messages {
		t.seen[m.ID] = struct{}{}
	}
	t.messages = messages
	t.State = ThreadLoaded

	return t, nil
}

// Events exposes the live feed for this thread
func (t *Thread) Events() <-chan realtime.Event {
	return t.sub.C
}

// Append adds a realtime insert to the visible history. Appends are
// idempotent on message id, so a duplicate delivery of the same event leaves
// exactly one visible copy. Returns whether the message was actually added.
func (t *Thread) Append(m models.Message) bool {
	if m.ConversationID != t.ConversationID {
		return false
	}
	if _, ok := t.seen[m.ID]; ok {
		return false
	}
	t.State = ThreadUpdating
	t.seen[m.ID] = struct{}{}
	t.messages = append(t.messages, m)
	t.State = ThreadLoaded
	return true
}

// Messages returns the visible history in timestamp order
func (t *Thread) Messages() []models.Message {
	return t.messages
}

// Close releases the thread's subscription. Opening a different conversation
// must Close the previous thread first so no handler keeps appending to a
// detached view.
func (t *Thread) Close() {
	if t.sub != nil {
		t.hub.Unsubscribe(t.sub)
	}
	t.State = ThreadUnloaded
}
