package services

import (
	"log"
	"net/http"

	"github.com/garagego/api/config"
	"github.com/garagego/api/db"
	apiError "github.com/garagego/api/errors"
	"github.com/garagego/api/mailingservices"
	"github.com/garagego/api/models"
	"github.com/garagego/api/services/jwt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.User, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	LogoutUser(accessToken string) *apiError.Error
	GetUserProfile(userID uuid.UUID) (*models.User, *apiError.Error)
	EditUserProfile(userID uuid.UUID, details *models.EditProfileRequest) (*models.Profile, *apiError.Error)
	SendPasswordResetEmail(request *models.ForgotPasswordRequest) *apiError.Error
	ResetPassword(request *models.ResetPasswordRequest, token string) *apiError.Error
	GetAllUsers() ([]models.User, *apiError.Error)
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     mailingservices.Mailer
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, mail mailingservices.Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
	}
}

func (s *authService) SignupUser(request *models.SignupRequest) (*models.User, *apiError.Error) {
	if err := models.ConformInput(request); err != nil {
		log.Printf("SignupUser conform error: %v", err)
		return nil, apiError.ErrBadRequest
	}

	if !models.ValidSignupRole(request.Role) {
		return nil, apiError.New("role must be one of car_owner, mechanic, seller", http.StatusBadRequest)
	}

	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		Profile: models.Profile{
			FullName: request.FullName,
			Phone:    request.Phone,
		},
	}

	user, err = s.authRepo.CreateUser(user, request.Role)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return user, nil
}

// LoginUser logs in a user and returns the login response
func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrInvalidPassword
		}
		log.Printf("error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.ErrInvalidPassword
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(foundUser.ID, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating token pair: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	// Role lookup failure leaves role empty rather than failing the login;
	// consumers treat a missing role as no elevated capability.
	role := ""
	if userRole, err := s.authRepo.GetUserRoleByUserID(foundUser.ID); err != nil {
		log.Printf("role lookup failed for user %s: %v", foundUser.ID, err)
	} else {
		role = userRole.Role
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:       foundUser.ID.String(),
			Email:    foundUser.Email,
			FullName: foundUser.Profile.FullName,
			Phone:    foundUser.Profile.Phone,
			Role:     role,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) LogoutUser(accessToken string) *apiError.Error {
	if err := s.authRepo.AddToBlackList(&models.Blacklist{Token: accessToken}); err != nil {
		log.Printf("error blacklisting token: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) GetUserProfile(userID uuid.UUID) (*models.User, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("error fetching user %s: %v", userID, err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}

func (s *authService) EditUserProfile(userID uuid.UUID, details *models.EditProfileRequest) (*models.Profile, *apiError.Error) {
	if err := models.ConformInput(details); err != nil {
		return nil, apiError.ErrBadRequest
	}
	profile, err := s.authRepo.UpdateProfile(userID, details)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("error updating profile for user %s: %v", userID, err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *authService) SendPasswordResetEmail(request *models.ForgotPasswordRequest) *apiError.Error {
	foundUser, err := s.authRepo.FindUserByEmail(request.Email)
	if err != nil {
		// An unknown address gets the same answer as a known one
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		log.Printf("error finding user for password reset: %v", err)
		return apiError.ErrInternalServerError
	}

	resetToken, err := jwt.GeneratePasswordResetToken(foundUser.Email, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating reset token: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := s.authRepo.SetResetToken(foundUser.Email, resetToken); err != nil {
		log.Printf("error storing reset token: %v", err)
		return apiError.ErrInternalServerError
	}

	resetLink := s.Config.BaseUrl + "/reset-password?token=" + resetToken
	if err := s.mail.SendResetPassword(foundUser.Email, resetLink); err != nil {
		log.Printf("error sending reset email: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) ResetPassword(request *models.ResetPasswordRequest, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	claims, err := jwt.ValidateAndGetClaims(token, s.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}
	email, ok := claims["email"].(string)
	if !ok || claims["use"] != "password_reset" {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	foundUser, err := s.authRepo.FindUserByEmail(email)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}
	if foundUser.ResetToken != token {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("error hashing new password: %v", err)
		return apiError.ErrInternalServerError
	}
	if err := s.authRepo.ResetPassword(foundUser.ID, string(hashedPassword)); err != nil {
		log.Printf("error resetting password: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) GetAllUsers() ([]models.User, *apiError.Error) {
	users, err := s.authRepo.GetAllUsers()
	if err != nil {
		log.Printf("error fetching all users: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return users, nil
}
