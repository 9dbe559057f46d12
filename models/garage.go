package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Garage is a workshop listing owned by a mechanic. Rating and ReviewCount
// are derived from the review rows and written back on every new review.
type Garage struct {
	Model
	OwnerID     uuid.UUID      `gorm:"type:uuid;index;not null" json:"owner_id"`
	Name        string         `gorm:"not null" json:"name" binding:"required"`
	Address     string         `gorm:"not null" json:"address" binding:"required"`
	Phone       string         `json:"phone"`
	Description string         `json:"description"`
	Services    StringList     `gorm:"type:text" json:"services"`
	ImageURL    string         `json:"image_url"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	Verified    bool           `gorm:"default:false" json:"verified"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	ReviewCount int            `gorm:"default:0" json:"review_count"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type GarageRequest struct {
	Name        string   `json:"name" binding:"required" conform:"trim"`
	Address     string   `json:"address" binding:"required" conform:"trim"`
	Phone       string   `json:"phone" conform:"trim"`
	Description string   `json:"description" conform:"trim"`
	Services    []string `json:"services"`
	ImageURL    string   `json:"image_url"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}
