package services

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/garagego/api/config"
	"github.com/garagego/api/db"
	apiError "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/garagego/api/realtime"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ChatService covers the conversation directory, conversation bootstrap and
// message sending. Thread viewing lives in ThreadService.
type ChatService interface {
	ListConversations(userID uuid.UUID) ([]models.EnrichedConversation, *apiError.Error)
	GetOrCreateConversation(userID uuid.UUID, request *models.StartConversationRequest) (*models.Conversation, *apiError.Error)
	GetConversation(userID, conversationID uuid.UUID) (*models.Conversation, *apiError.Error)
	GetThreadMessages(userID, conversationID uuid.UUID) ([]models.Message, *apiError.Error)
	SendMessage(userID, conversationID uuid.UUID, content string) (*models.Message, *apiError.Error)
}

type chatService struct {
	Config   *config.Config
	chatRepo db.ChatRepository
	hub      *realtime.Hub
}

func NewChatService(chatRepo db.ChatRepository, hub *realtime.Hub, conf *config.Config) ChatService {
	return &chatService{
		Config:   conf,
		chatRepo: chatRepo,
		hub:      hub,
	}
}

// ListConversations returns the caller's conversations newest-activity first,
// each carrying the counterpart's display name and the latest message. Both
// enrichments are batch lookups, so a directory load costs three queries no
// matter how many conversations the user has.
func (s *chatService) ListConversations(userID uuid.UUID) ([]models.EnrichedConversation, *apiError.Error) {
	conversations, err := s.chatRepo.GetConversationsByUser(userID)
	if err != nil {
		log.Printf("error listing conversations for %s: %v", userID, err)
		return nil, apiError.ErrInternalServerError
	}

	otherIDs := make([]uuid.UUID, 0, len(conversations))
	seenOther := map[uuid.UUID]struct{}{}
	conversationIDs := make([]uuid.UUID, 0, len(conversations))
	for _, c := range conversations {
		other := c.ParticipantOne
		if other == userID {
			other = c.ParticipantTwo
		}
		if _, ok := seenOther[other]; !ok {
			seenOther[other] = struct{}{}
			otherIDs = append(otherIDs, other)
		}
		conversationIDs = append(conversationIDs, c.ID)
	}

	profiles, err := s.chatRepo.GetProfilesByUserIDs(otherIDs)
	if err != nil {
		log.Printf("error resolving counterpart profiles: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	nameByUser := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		nameByUser[p.UserID] = p.FullName
	}

	latest, err := s.chatRepo.GetLatestMessages(conversationIDs)
	if err != nil {
		log.Printf("error resolving latest messages: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	// rows arrive newest first; the first one seen per conversation wins
	latestByConversation := make(map[uuid.UUID]models.Message, len(conversations))
	for _, m := range latest {
		if _, ok := latestByConversation[m.ConversationID]; !ok {
			latestByConversation[m.ConversationID] = m
		}
	}

	enriched := make([]models.EnrichedConversation, 0, len(conversations))
	for _, c := range conversations {
		other := c.ParticipantOne
		if other == userID {
			other = c.ParticipantTwo
		}
		entry := models.EnrichedConversation{
			Conversation:  c,
			OtherUserID:   other,
			OtherUserName: nameByUser[other],
		}
		if m, ok := latestByConversation[c.ID]; ok {
			entry.LastMessage = m.Content
			entry.LastMessageAt = m.CreatedAt
		}
		enriched = append(enriched, entry)
	}
	return enriched, nil
}

// GetOrCreateConversation normalizes the pair into canonical slots before
// both the lookup and the insert, so bootstrap(A,B) and bootstrap(B,A) always
// resolve to the same row. Repeated calls never create duplicates.
func (s *chatService) GetOrCreateConversation(userID uuid.UUID, request *models.StartConversationRequest) (*models.Conversation, *apiError.Error) {
	if request.OtherUserID == userID {
		return nil, apiError.New("cannot start a conversation with yourself", http.StatusBadRequest)
	}
	if request.GarageID != nil && request.SparePartID != nil {
		return nil, apiError.New("conversation context must be a garage or a spare part, not both", http.StatusBadRequest)
	}

	participantOne, participantTwo := models.NormalizePair(userID, request.OtherUserID)
	ctx := models.ConversationContext{GarageID: request.GarageID, SparePartID: request.SparePartID}

	existing, err := s.chatRepo.FindConversation(participantOne, participantTwo, ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("error looking up conversation: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	created, err := s.chatRepo.CreateConversation(&models.Conversation{
		ParticipantOne: participantOne,
		ParticipantTwo: participantTwo,
		GarageID:       request.GarageID,
		SparePartID:    request.SparePartID,
	})
	if err != nil {
		log.Printf("error creating conversation: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func (s *chatService) GetConversation(userID, conversationID uuid.UUID) (*models.Conversation, *apiError.Error) {
	conversation, err := s.chatRepo.GetConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("error fetching conversation %s: %v", conversationID, err)
		return nil, apiError.ErrInternalServerError
	}
	if conversation.ParticipantOne != userID && conversation.ParticipantTwo != userID {
		return nil, apiError.ErrForbidden
	}
	return conversation, nil
}

// GetThreadMessages loads the full history oldest-first and then fires the
// courtesy mark-as-read for the counterpart's unread messages. The update is
// best-effort: a failure is logged and swallowed, never surfaced.
func (s *chatService) GetThreadMessages(userID, conversationID uuid.UUID) ([]models.Message, *apiError.Error) {
	if _, apiErr := s.GetConversation(userID, conversationID); apiErr != nil {
		return nil, apiErr
	}

	messages, err := s.chatRepo.GetMessages(conversationID)
	if err != nil {
		log.Printf("error fetching messages for %s: %v", conversationID, err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.chatRepo.MarkMessagesRead(conversationID, userID); err != nil {
		log.Printf("mark-as-read failed for conversation %s: %v", conversationID, err)
	}

	return messages, nil
}

// SendMessage rejects whitespace-only content before touching the store.
// After the insert it bumps the conversation's freshness stamp and fans the
// row out to everyone subscribed to the conversation, the sender included.
func (s *chatService) SendMessage(userID, conversationID uuid.UUID, content string) (*models.Message, *apiError.Error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apiError.New("message content is empty", http.StatusBadRequest)
	}

	if _, apiErr := s.GetConversation(userID, conversationID); apiErr != nil {
		return nil, apiErr
	}

	message, err := s.chatRepo.CreateMessage(&models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
	})
	if err != nil {
		log.Printf("error saving message: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.chatRepo.TouchConversation(conversationID, time.Now()); err != nil {
		log.Printf("error touching conversation %s: %v", conversationID, err)
	}

	s.hub.Broadcast(conversationID, realtime.Event{Type: "message", Message: *message})

	return message, nil
}
