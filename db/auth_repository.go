package db

import (
	"log"

	"github.com/garagego/api/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User, role string) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uuid.UUID) (*models.User, error)
	GetUserRoleByUserID(userID uuid.UUID) (*models.UserRole, error)
	UpdateProfile(userID uuid.UUID, details *models.EditProfileRequest) (*models.Profile, error)
	UpdateAvatarURL(userID uuid.UUID, avatarURL string) error
	SetResetToken(email, token string) error
	ResetPassword(userID uuid.UUID, hashedPassword string) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	GetAllUsers() ([]models.User, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

// CreateUser stores the user together with its profile and role row in one
// transaction so a half-created account never survives a failure
func (a *authRepo) CreateUser(user *models.User, role string) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		user.Profile.UserID = user.ID
		if err := tx.Create(&user.Profile).Error; err != nil {
			return err
		}
		user.Role = models.UserRole{UserID: user.ID, Role: role}
		return tx.Create(&user.Role).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := a.DB.Preload("Profile").Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := a.DB.Preload("Profile").Preload("Role").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) GetUserRoleByUserID(userID uuid.UUID) (*models.UserRole, error) {
	var role models.UserRole
	if err := a.DB.Where("user_id = ?", userID).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (a *authRepo) UpdateProfile(userID uuid.UUID, details *models.EditProfileRequest) (*models.Profile, error) {
	var profile models.Profile
	if err := a.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	if details.FullName != "" {
		profile.FullName = details.FullName
	}
	if details.Phone != "" {
		profile.Phone = details.Phone
	}
	if details.Location != "" {
		profile.Location = details.Location
	}
	if details.Bio != "" {
		profile.Bio = details.Bio
	}

	if err := a.DB.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *authRepo) UpdateAvatarURL(userID uuid.UUID, avatarURL string) error {
	result := a.DB.Model(&models.Profile{}).Where("user_id = ?", userID).Update("avatar_url", avatarURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) SetResetToken(email, token string) error {
	return a.DB.Model(&models.User{}).Where("email = ?", email).Update("reset_token", token).Error
}

func (a *authRepo) ResetPassword(userID uuid.UUID, hashedPassword string) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"hashed_password": hashedPassword, "reset_token": ""}).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("error checking token blacklist: %v", err)
		return false
	}
	return count > 0
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Preload("Profile").Preload("Role").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
