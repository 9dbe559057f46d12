package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCarOwner = "car_owner"
	RoleMechanic = "mechanic"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

// UserRole assigns exactly one role to a user. Roles are fixed at signup;
// there is no role-change flow.
type UserRole struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Role   string    `gorm:"not null" json:"role"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ValidSignupRole reports whether a role may be self-assigned at signup.
// Admin is provisioned out of band, never through the signup form.
func ValidSignupRole(role string) bool {
	switch role {
	case RoleCarOwner, RoleMechanic, RoleSeller:
		return true
	}
	return false
}
