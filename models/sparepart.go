package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SparePart is a part listing owned by a seller
type SparePart struct {
	Model
	SellerID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"seller_id"`
	Name        string         `gorm:"not null" json:"name" binding:"required"`
	Price       float64        `gorm:"not null" json:"price" binding:"required"`
	Condition   string         `gorm:"not null;default:'used'" json:"condition"`
	Category    string         `json:"category"`
	CarModel    string         `json:"car_model"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Available   bool           `gorm:"default:true" json:"available"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	ReviewCount int            `gorm:"default:0" json:"review_count"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type SparePartRequest struct {
	Name        string  `json:"name" binding:"required" conform:"trim"`
	Price       float64 `json:"price" binding:"required"`
	Condition   string  `json:"condition" conform:"trim"`
	Category    string  `json:"category" conform:"trim"`
	CarModel    string  `json:"car_model" conform:"trim"`
	Location    string  `json:"location" conform:"trim"`
	Description string  `json:"description" conform:"trim"`
	ImageURL    string  `json:"image_url"`
}

// SparePartFilter narrows the public parts listing
type SparePartFilter struct {
	Category  string
	Condition string
	CarModel  string
	Search    string
}
