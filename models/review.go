package models

import "github.com/google/uuid"

// Review belongs to a reviewer and to exactly one of a garage or a spare
// part, never both
type Review struct {
	Model
	ReviewerID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"reviewer_id"`
	GarageID    *uuid.UUID `gorm:"type:uuid;index" json:"garage_id,omitempty"`
	SparePartID *uuid.UUID `gorm:"type:uuid;index" json:"spare_part_id,omitempty"`
	Rating      int        `gorm:"not null" json:"rating"`
	Comment     string     `json:"comment"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" conform:"trim"`
}
