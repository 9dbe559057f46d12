package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation links two participants, optionally in the context of a garage
// or a spare-part listing. ParticipantOne always holds the smaller of the two
// uuids (as strings) so an unordered pair maps to a single row; see
// NormalizePair.
type Conversation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantOne uuid.UUID  `gorm:"type:uuid;index;not null" json:"participant_one"`
	ParticipantTwo uuid.UUID  `gorm:"type:uuid;index;not null" json:"participant_two"`
	GarageID       *uuid.UUID `gorm:"type:uuid;index" json:"garage_id,omitempty"`
	SparePartID    *uuid.UUID `gorm:"type:uuid;index" json:"spare_part_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NormalizePair orders two user ids into the canonical participant slots.
// The same unordered pair always lands in the same slots regardless of
// argument order, which is what keeps the pair-per-context lookup unique.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}

// ConversationContext carries the optional listing a conversation is about
type ConversationContext struct {
	GarageID    *uuid.UUID
	SparePartID *uuid.UUID
}

type StartConversationRequest struct {
	OtherUserID uuid.UUID  `json:"other_user_id" binding:"required"`
	GarageID    *uuid.UUID `json:"garage_id,omitempty"`
	SparePartID *uuid.UUID `json:"spare_part_id,omitempty"`
}

// EnrichedConversation is a directory entry: the conversation plus the
// counterpart's display name and the latest message snippet
type EnrichedConversation struct {
	Conversation
	OtherUserID   uuid.UUID `json:"other_user_id"`
	OtherUserName string    `json:"other_user_name"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
}
