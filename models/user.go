package models

import (
	"errors"

	goval "github.com/go-passwd/validator"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account of the application. The profile and role rows
// hang off the user id, mirroring the auth-provider/profile split.
type User struct {
	Model
	Email          string   `json:"email" gorm:"unique;not null" binding:"required,email"`
	Password       string   `json:"password,omitempty" gorm:"-"`
	HashedPassword string   `json:"-"`
	ResetToken     string   `json:"-"`
	Profile        Profile  `gorm:"foreignKey:UserID" json:"profile"`
	Role           UserRole `gorm:"foreignKey:UserID" json:"role"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required,min=2" conform:"trim"`
	Phone    string `json:"phone" conform:"trim"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

// ConformInput trims and normalizes tagged request fields in place
func ConformInput(data interface{}) error {
	return conform.Strings(data)
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

// Blacklist holds access tokens invalidated by logout
type Blacklist struct {
	Model
	Token string `gorm:"index" json:"token"`
}
