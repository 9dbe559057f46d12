package db

import (
	"time"

	"github.com/garagego/api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository interface {
	GetConversationsByUser(userID uuid.UUID) ([]models.Conversation, error)
	GetConversationByID(id uuid.UUID) (*models.Conversation, error)
	FindConversation(participantOne, participantTwo uuid.UUID, ctx models.ConversationContext) (*models.Conversation, error)
	CreateConversation(conversation *models.Conversation) (*models.Conversation, error)
	TouchConversation(id uuid.UUID, at time.Time) error
	GetMessages(conversationID uuid.UUID) ([]models.Message, error)
	GetLatestMessages(conversationIDs []uuid.UUID) ([]models.Message, error)
	CreateMessage(message *models.Message) (*models.Message, error)
	MarkMessagesRead(conversationID, readerID uuid.UUID) error
	GetProfilesByUserIDs(userIDs []uuid.UUID) ([]models.Profile, error)
}

type chatRepo struct {
	DB *gorm.DB
}

func NewChatRepo(db *GormDB) ChatRepository {
	return &chatRepo{db.DB}
}

func (c *chatRepo) GetConversationsByUser(userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := c.DB.Where("participant_one = ? OR participant_two = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (c *chatRepo) GetConversationByID(id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := c.DB.Where("id = ?", id).First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindConversation matches on both canonical participants and the exact
// context. A garage-context conversation and a direct one between the same
// two users are distinct rows, so nil context fields must match IS NULL.
func (c *chatRepo) FindConversation(participantOne, participantTwo uuid.UUID, ctx models.ConversationContext) (*models.Conversation, error) {
	query := c.DB.Where("participant_one = ? AND participant_two = ?", participantOne, participantTwo)

	if ctx.GarageID != nil {
		query = query.Where("garage_id = ?", *ctx.GarageID)
	} else {
		query = query.Where("garage_id IS NULL")
	}
	if ctx.SparePartID != nil {
		query = query.Where("spare_part_id = ?", *ctx.SparePartID)
	} else {
		query = query.Where("spare_part_id IS NULL")
	}

	var conversation models.Conversation
	if err := query.First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (c *chatRepo) CreateConversation(conversation *models.Conversation) (*models.Conversation, error) {
	if err := c.DB.Create(conversation).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}

func (c *chatRepo) TouchConversation(id uuid.UUID, at time.Time) error {
	return c.DB.Model(&models.Conversation{}).Where("id = ?", id).Update("updated_at", at).Error
}

func (c *chatRepo) GetMessages(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := c.DB.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetLatestMessages fetches messages across all the given conversations in
// one query, newest first. Callers keep the first row they see per
// conversation id.
func (c *chatRepo) GetLatestMessages(conversationIDs []uuid.UUID) ([]models.Message, error) {
	if len(conversationIDs) == 0 {
		return nil, nil
	}
	var messages []models.Message
	err := c.DB.Where("conversation_id IN ?", conversationIDs).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *chatRepo) CreateMessage(message *models.Message) (*models.Message, error) {
	if err := c.DB.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// MarkMessagesRead flips read on everything in the conversation the reader
// did not send. The reader's own messages are never touched.
func (c *chatRepo) MarkMessagesRead(conversationID, readerID uuid.UUID) error {
	return c.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, readerID, false).
		Update("read", true).Error
}

func (c *chatRepo) GetProfilesByUserIDs(userIDs []uuid.UUID) ([]models.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	if err := c.DB.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
