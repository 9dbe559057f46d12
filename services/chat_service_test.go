package services

import (
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garagego/api/config"
	"github.com/garagego/api/models"
	"github.com/garagego/api/realtime"
)

// fakeChatRepo keeps everything in memory and mimics the query shapes the
// real repository produces.
type fakeChatRepo struct {
	conversations []models.Conversation
	messages      []models.Message
	profiles      []models.Profile

	onGetMessages func()
}

func (f *fakeChatRepo) GetConversationsByUser(userID uuid.UUID) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.conversations {
		if c.ParticipantOne == userID || c.ParticipantTwo == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeChatRepo) GetConversationByID(id uuid.UUID) (*models.Conversation, error) {
	for i := range f.conversations {
		if f.conversations[i].ID == id {
			c := f.conversations[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func sameContext(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeChatRepo) FindConversation(participantOne, participantTwo uuid.UUID, ctx models.ConversationContext) (*models.Conversation, error) {
	for i := range f.conversations {
		c := f.conversations[i]
		if c.ParticipantOne == participantOne && c.ParticipantTwo == participantTwo &&
			sameContext(c.GarageID, ctx.GarageID) && sameContext(c.SparePartID, ctx.SparePartID) {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChatRepo) CreateConversation(conversation *models.Conversation) (*models.Conversation, error) {
	conversation.ID = uuid.New()
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	f.conversations = append(f.conversations, *conversation)
	return conversation, nil
}

func (f *fakeChatRepo) TouchConversation(id uuid.UUID, at time.Time) error {
	for i := range f.conversations {
		if f.conversations[i].ID == id {
			f.conversations[i].UpdatedAt = at
		}
	}
	return nil
}

func (f *fakeChatRepo) GetMessages(conversationID uuid.UUID) ([]models.Message, error) {
	if f.onGetMessages != nil {
		f.onGetMessages()
	}
	var out []models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeChatRepo) GetLatestMessages(conversationIDs []uuid.UUID) ([]models.Message, error) {
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range conversationIDs {
		wanted[id] = struct{}{}
	}
	var out []models.Message
	for _, m := range f.messages {
		if _, ok := wanted[m.ConversationID]; ok {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeChatRepo) CreateMessage(message *models.Message) (*models.Message, error) {
	message.ID = uuid.New()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, *message)
	return message, nil
}

func (f *fakeChatRepo) MarkMessagesRead(conversationID, readerID uuid.UUID) error {
	for i := range f.messages {
		m := &f.messages[i]
		if m.ConversationID == conversationID && m.SenderID != readerID && !m.Read {
			m.Read = true
		}
	}
	return nil
}

func (f *fakeChatRepo) GetProfilesByUserIDs(userIDs []uuid.UUID) ([]models.Profile, error) {
	wanted := map[uuid.UUID]struct{}{}
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}
	var out []models.Profile
	for _, p := range f.profiles {
		if _, ok := wanted[p.UserID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newChatFixture() (*fakeChatRepo, *realtime.Hub, ChatService) {
	repo := &fakeChatRepo{}
	hub := realtime.NewHub()
	return repo, hub, NewChatService(repo, hub, &config.Config{})
}

func TestGetOrCreateConversationIsIdempotent(t *testing.T) {
	repo, _, svc := newChatFixture()
	alice, bob := uuid.New(), uuid.New()

	first, apiErr := svc.GetOrCreateConversation(alice, &models.StartConversationRequest{OtherUserID: bob})
	if apiErr != nil {
		t.Fatalf("first bootstrap failed: %v", apiErr)
	}
	second, apiErr := svc.GetOrCreateConversation(bob, &models.StartConversationRequest{OtherUserID: alice})
	if apiErr != nil {
		t.Fatalf("reversed bootstrap failed: %v", apiErr)
	}

	if first.ID != second.ID {
		t.Errorf("bootstrap(A,B) and bootstrap(B,A) resolved to different conversations")
	}
	if len(repo.conversations) != 1 {
		t.Errorf("expected 1 conversation, got %d", len(repo.conversations))
	}
	if first.ParticipantOne.String() > first.ParticipantTwo.String() {
		t.Errorf("participants not stored in canonical order: %s > %s", first.ParticipantOne, first.ParticipantTwo)
	}
}

func TestGetOrCreateConversationContextsAreDistinct(t *testing.T) {
	repo, _, svc := newChatFixture()
	alice, bob := uuid.New(), uuid.New()
	garageID := uuid.New()

	general, apiErr := svc.GetOrCreateConversation(alice, &models.StartConversationRequest{OtherUserID: bob})
	if apiErr != nil {
		t.Fatalf("general bootstrap failed: %v", apiErr)
	}
	aboutGarage, apiErr := svc.GetOrCreateConversation(alice, &models.StartConversationRequest{OtherUserID: bob, GarageID: &garageID})
	if apiErr != nil {
		t.Fatalf("garage bootstrap failed: %v", apiErr)
	}

	if general.ID == aboutGarage.ID {
		t.Error("garage-scoped conversation collapsed into the general one")
	}
	if len(repo.conversations) != 2 {
		t.Errorf("expected 2 conversations, got %d", len(repo.conversations))
	}
}

func TestGetOrCreateConversationRejectsSelf(t *testing.T) {
	repo, _, svc := newChatFixture()
	alice := uuid.New()

	_, apiErr := svc.GetOrCreateConversation(alice, &models.StartConversationRequest{OtherUserID: alice})
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for self conversation, got %v", apiErr)
	}
	if len(repo.conversations) != 0 {
		t.Errorf("self conversation was stored")
	}
}

func TestGetOrCreateConversationRejectsDoubleContext(t *testing.T) {
	_, _, svc := newChatFixture()
	garageID, partID := uuid.New(), uuid.New()

	_, apiErr := svc.GetOrCreateConversation(uuid.New(), &models.StartConversationRequest{
		OtherUserID: uuid.New(),
		GarageID:    &garageID,
		SparePartID: &partID,
	})
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for double context, got %v", apiErr)
	}
}

func TestListConversationsEnrichment(t *testing.T) {
	repo, _, svc := newChatFixture()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	repo.profiles = []models.Profile{
		{UserID: bob, FullName: "Bob the Mechanic"},
		{UserID: carol, FullName: "Carol Parts"},
	}
	p1, p2 := models.NormalizePair(alice, bob)
	withBob := models.Conversation{ID: uuid.New(), ParticipantOne: p1, ParticipantTwo: p2, UpdatedAt: time.Now().Add(-time.Hour)}
	p1, p2 = models.NormalizePair(alice, carol)
	withCarol := models.Conversation{ID: uuid.New(), ParticipantOne: p1, ParticipantTwo: p2, UpdatedAt: time.Now()}
	repo.conversations = []models.Conversation{withBob, withCarol}
	repo.messages = []models.Message{
		{ID: uuid.New(), ConversationID: withBob.ID, SenderID: bob, Content: "old", CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: uuid.New(), ConversationID: withBob.ID, SenderID: alice, Content: "brake pads?", CreatedAt: time.Now().Add(-time.Hour)},
	}

	enriched, apiErr := svc.ListConversations(alice)
	if apiErr != nil {
		t.Fatalf("ListConversations failed: %v", apiErr)
	}
	if len(enriched) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(enriched))
	}
	if enriched[0].ID != withCarol.ID {
		t.Errorf("directory not ordered by latest activity")
	}
	if enriched[0].OtherUserName != "Carol Parts" {
		t.Errorf("counterpart name = %q, want %q", enriched[0].OtherUserName, "Carol Parts")
	}
	if enriched[0].LastMessage != "" {
		t.Errorf("conversation without messages reported last message %q", enriched[0].LastMessage)
	}
	if enriched[1].OtherUserID != bob {
		t.Errorf("counterpart id = %s, want %s", enriched[1].OtherUserID, bob)
	}
	if enriched[1].LastMessage != "brake pads?" {
		t.Errorf("last message = %q, want the newest one", enriched[1].LastMessage)
	}
}

func TestSendMessageRejectsWhitespace(t *testing.T) {
	repo, _, svc := newChatFixture()
	alice, bob := uuid.New(), uuid.New()
	conversation, _ := svc.GetOrCreateConversation(alice, &models.StartConversationRequest{OtherUserID: bob})

	_, apiErr := svc.SendMessage(alice, conversation.ID, "   \n\t ")
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for whitespace message, got %v", apiErr)
	}
	if len(repo.messages) != 0 {
		t.Error("whitespace message reached the store")
	}
}

func TestSendMessageTrimsTouchesAndBroadcasts(t *testing.T) {
	repo, hub, svc := newChatFixture()
	alice, bob := uuid.New(), uuid.New()
	conversation, _ := svc.GetOrCreateConversation(alice, &models.StartConversationRequest{OtherUserID: bob})

	sub := hub.Subscribe(conversation.ID)
	defer hub.Unsubscribe(sub)

	before := repo.conversations[0].UpdatedAt
	time.Sleep(time.Millisecond)

	message, apiErr := svc.SendMessage(alice, conversation.ID, "  hello  ")
	if apiErr != nil {
		t.Fatalf("SendMessage failed: %v", apiErr)
	}
	if message.Content != "hello" {
		t.Errorf("content = %q, want trimmed %q", message.Content, "hello")
	}
	if !repo.conversations[0].UpdatedAt.After(before) {
		t.Error("conversation freshness stamp was not bumped")
	}

	select {
	case ev := <-sub.C:
		if ev.Type != "message" || ev.Message.ID != message.ID {
			t.Errorf("broadcast delivered wrong event: %+v", ev)
		}
	default:
		t.Error("no event broadcast to the conversation channel")
	}
}

func TestSendMessageFromOutsiderIsForbidden(t *testing.T) {
	_, _, svc := newChatFixture()
	alice, bob := uuid.New(), uuid.New()
	conversation, _ := svc.GetOrCreateConversation(alice, &models.StartConversationRequest{OtherUserID: bob})

	_, apiErr := svc.SendMessage(uuid.New(), conversation.ID, "let me in")
	if apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-participant, got %v", apiErr)
	}
}

func TestGetThreadMessagesMarksOnlyCounterpartUnread(t *testing.T) {
	repo, _, svc := newChatFixture()
	alice, bob := uuid.New(), uuid.New()
	conversation, _ := svc.GetOrCreateConversation(alice, &models.StartConversationRequest{OtherUserID: bob})

	repo.messages = []models.Message{
		{ID: uuid.New(), ConversationID: conversation.ID, SenderID: bob, Content: "hi", CreatedAt: time.Now().Add(-2 * time.Minute)},
		{ID: uuid.New(), ConversationID: conversation.ID, SenderID: alice, Content: "hello", CreatedAt: time.Now().Add(-time.Minute)},
	}

	messages, apiErr := svc.GetThreadMessages(alice, conversation.ID)
	if apiErr != nil {
		t.Fatalf("GetThreadMessages failed: %v", apiErr)
	}
	if len(messages) != 2 || messages[0].Content != "hi" {
		t.Fatalf("history not returned oldest first: %+v", messages)
	}

	for _, m := range repo.messages {
		if m.SenderID == bob && !m.Read {
			t.Error("counterpart message left unread after thread load")
		}
		if m.SenderID == alice && m.Read {
			t.Error("reader's own message was marked read")
		}
	}
}
