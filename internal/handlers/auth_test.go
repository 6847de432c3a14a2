package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"child-clinic-server/internal/config"
	"child-clinic-server/internal/middleware"
	"child-clinic-server/internal/models"
	"child-clinic-server/internal/store"
)

// fakeUserStore is an in-memory UserStore for handler tests.
type fakeUserStore struct {
	users  map[string]models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		s.nextID++
		user.ID = fmt.Sprintf("user-%d", s.nextID)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) ListAll(ctx context.Context) ([]models.User, error) {
	all := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	return all, nil
}

func (s *fakeUserStore) DeleteByID(ctx context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// fakeTokenStore is an in-memory RefreshTokenStore keyed by token string.
type fakeTokenStore struct {
	tokens map[string]models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]models.RefreshToken)}
}

func (s *fakeTokenStore) Create(ctx context.Context, token *models.RefreshToken) error {
	s.tokens[token.Token] = *token
	return nil
}

func (s *fakeTokenStore) GetActive(ctx context.Context, token, userID string, now time.Time) (models.RefreshToken, error) {
	stored, ok := s.tokens[token]
	if !ok || stored.IsRevoked || stored.UserID != userID || !stored.ExpiresAt.After(now) {
		return models.RefreshToken{}, store.ErrNotFound
	}
	return stored, nil
}

func (s *fakeTokenStore) GetUnrevoked(ctx context.Context, token string) (models.RefreshToken, error) {
	stored, ok := s.tokens[token]
	if !ok || stored.IsRevoked {
		return models.RefreshToken{}, store.ErrNotFound
	}
	return stored, nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, token *models.RefreshToken) error {
	token.IsRevoked = true
	s.tokens[token.Token] = *token
	return nil
}

func newAuthTestRouter(users store.UserStore, tokens store.RefreshTokenStore, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(users, tokens, cfg)

	public := router.Group("/api/v1/auth")
	public.POST("/register", handler.Register)
	public.POST("/login", handler.Login)
	public.POST("/refresh-token", handler.RefreshToken)

	private := router.Group("/api/v1/auth")
	private.Use(middleware.AuthMiddleware(cfg))
	private.POST("/logout", handler.Logout)
	private.GET("/profile", handler.GetProfile)
	return router
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) LoginResponse {
	t.Helper()
	resp, _ := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"firstName": "Pat",
		"lastName":  "Guardian",
		"email":     email,
		"password":  "password123",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 on register, got %d: %s", resp.Code, resp.Body.String())
	}

	resp, env := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on login, got %d: %s", resp.Code, resp.Body.String())
	}
	var login LoginResponse
	if err := json.Unmarshal(env.Data, &login); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return login
}

func TestRegisterLoginProfile(t *testing.T) {
	cfg := testConfig()
	router := newAuthTestRouter(newFakeUserStore(), newFakeTokenStore(), cfg)

	login := registerAndLogin(t, router, "guardian@x.com")
	if login.AccessToken == "" || login.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", login)
	}
	// Registration never hands out the admin role
	if login.User.Role != models.RoleGuardian {
		t.Fatalf("expected guardian role, got %q", login.User.Role)
	}

	resp, env := doRequest(t, router, http.MethodGet, "/api/v1/auth/profile", login.AccessToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on profile, got %d", resp.Code)
	}
	var profile models.UserSanitized
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Email != "guardian@x.com" {
		t.Fatalf("expected profile for guardian@x.com, got %q", profile.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	cfg := testConfig()
	router := newAuthTestRouter(newFakeUserStore(), newFakeTokenStore(), cfg)

	registerAndLogin(t, router, "guardian@x.com")
	resp, _ := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"firstName": "Pat",
		"lastName":  "Guardian",
		"email":     "guardian@x.com",
		"password":  "password123",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 on duplicate register, got %d", resp.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	cfg := testConfig()
	router := newAuthTestRouter(newFakeUserStore(), newFakeTokenStore(), cfg)

	registerAndLogin(t, router, "guardian@x.com")
	resp, _ := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "guardian@x.com",
		"password": "not-the-password",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 on wrong password, got %d", resp.Code)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	cfg := testConfig()
	router := newAuthTestRouter(newFakeUserStore(), newFakeTokenStore(), cfg)

	login := registerAndLogin(t, router, "guardian@x.com")

	// First refresh succeeds and issues a different token
	resp, env := doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{
		"refreshToken": login.RefreshToken,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on refresh, got %d: %s", resp.Code, resp.Body.String())
	}
	var refreshed RefreshTokenResponse
	if err := json.Unmarshal(env.Data, &refreshed); err != nil {
		t.Fatalf("failed to decode refresh response: %v", err)
	}
	if refreshed.RefreshToken == "" || refreshed.RefreshToken == login.RefreshToken {
		t.Fatalf("expected a rotated refresh token")
	}

	// Replaying the original token is rejected, it was revoked by rotation
	resp, _ = doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{
		"refreshToken": login.RefreshToken,
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 on replayed refresh token, got %d", resp.Code)
	}

	// The rotated token is still usable
	resp, _ = doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{
		"refreshToken": refreshed.RefreshToken,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on rotated token, got %d", resp.Code)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	cfg := testConfig()
	router := newAuthTestRouter(newFakeUserStore(), newFakeTokenStore(), cfg)

	login := registerAndLogin(t, router, "guardian@x.com")

	resp, _ := doRequest(t, router, http.MethodPost, "/api/v1/auth/logout", login.AccessToken, map[string]string{
		"refreshToken": login.RefreshToken,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on logout, got %d", resp.Code)
	}

	// The revoked token can no longer be exchanged
	resp, _ = doRequest(t, router, http.MethodPost, "/api/v1/auth/refresh-token", "", map[string]string{
		"refreshToken": login.RefreshToken,
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 after logout, got %d", resp.Code)
	}

	// Logging out twice is harmless
	resp, _ = doRequest(t, router, http.MethodPost, "/api/v1/auth/logout", login.AccessToken, map[string]string{
		"refreshToken": login.RefreshToken,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on repeated logout, got %d", resp.Code)
	}
}
