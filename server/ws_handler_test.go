package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/garagego/api/config"
	apiError "github.com/garagego/api/errors"
	"github.com/garagego/api/models"
	"github.com/garagego/api/services"
	"github.com/garagego/api/services/jwt"
)

type fakeAuthRepo struct {
	blacklisted bool
}

func (f *fakeAuthRepo) CreateUser(user *models.User, role string) (*models.User, error) {
	return user, nil
}
func (f *fakeAuthRepo) IsEmailExist(email string) error { return nil }
func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	return &models.User{}, nil
}
func (f *fakeAuthRepo) FindUserByID(id uuid.UUID) (*models.User, error) {
	return &models.User{}, nil
}
func (f *fakeAuthRepo) GetUserRoleByUserID(userID uuid.UUID) (*models.UserRole, error) {
	return &models.UserRole{}, nil
}
func (f *fakeAuthRepo) UpdateProfile(userID uuid.UUID, details *models.EditProfileRequest) (*models.Profile, error) {
	return &models.Profile{}, nil
}
func (f *fakeAuthRepo) UpdateAvatarURL(userID uuid.UUID, avatarURL string) error { return nil }
func (f *fakeAuthRepo) SetResetToken(email, token string) error                  { return nil }
func (f *fakeAuthRepo) ResetPassword(userID uuid.UUID, hashedPassword string) error {
	return nil
}
func (f *fakeAuthRepo) AddToBlackList(blacklist *models.Blacklist) error { return nil }
func (f *fakeAuthRepo) IsTokenInBlacklist(token string) bool             { return f.blacklisted }
func (f *fakeAuthRepo) GetAllUsers() ([]models.User, error)              { return nil, nil }

type fakeThreadService struct {
	opened bool
}

func (f *fakeThreadService) OpenThread(userID, conversationID uuid.UUID) (*services.Thread, *apiError.Error) {
	f.opened = true
	return nil, apiError.ErrNotFound
}

func newSocketFixture(t *testing.T, repo *fakeAuthRepo, threads *fakeThreadService) http.Handler {
	t.Setenv("GIN_MODE", "test")
	s := &Server{
		Config:         &config.Config{JWTSecret: "ws-test-secret"},
		AuthRepository: repo,
		ThreadService:  threads,
	}
	return s.setupRouter()
}

func TestConversationSocketRejectsBlacklistedToken(t *testing.T) {
	repo := &fakeAuthRepo{blacklisted: true}
	threads := &fakeThreadService{}
	router := newSocketFixture(t, repo, threads)

	token, _, err := jwt.GenerateTokenPair(uuid.New(), "ws-test-secret")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws/conversations/"+uuid.NewString()+"?token="+token, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if threads.opened {
		t.Error("blacklisted token reached OpenThread")
	}
}

func TestConversationSocketAcceptsLiveToken(t *testing.T) {
	repo := &fakeAuthRepo{}
	threads := &fakeThreadService{}
	router := newSocketFixture(t, repo, threads)

	token, _, err := jwt.GenerateTokenPair(uuid.New(), "ws-test-secret")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws/conversations/"+uuid.NewString()+"?token="+token, nil)
	router.ServeHTTP(w, req)

	if !threads.opened {
		t.Error("live token never reached OpenThread")
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d from the thread service", w.Code, http.StatusNotFound)
	}
}

func TestConversationSocketRequiresToken(t *testing.T) {
	repo := &fakeAuthRepo{}
	threads := &fakeThreadService{}
	router := newSocketFixture(t, repo, threads)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws/conversations/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if threads.opened {
		t.Error("missing token reached OpenThread")
	}
}
