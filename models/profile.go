package models

import "github.com/google/uuid"

// Profile holds the public-facing details of a user
type Profile struct {
	Model
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
}

type EditProfileRequest struct {
	FullName string `json:"full_name" conform:"trim"`
	Phone    string `json:"phone" conform:"trim"`
	Location string `json:"location" conform:"trim"`
	Bio      string `json:"bio" conform:"trim"`
}
