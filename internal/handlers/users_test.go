package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"child-clinic-server/internal/config"
	"child-clinic-server/internal/middleware"
	"child-clinic-server/internal/models"
)

func newUserTestRouter(users *fakeUserStore, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewUserHandler(users)

	admin := router.Group("/api/v1/users")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RoleAdmin))
	admin.GET("", handler.GetUsers)
	admin.GET("/:id", handler.GetUserByID)
	admin.DELETE("/:id", handler.DeleteUser)
	return router
}

func seedUser(t *testing.T, users *fakeUserStore, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Seeded",
		LastName:  "User",
		Email:     email,
		Role:      role,
	}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := users.Create(t.Context(), &user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestGetUsersRequiresAdmin(t *testing.T) {
	cfg := testConfig()
	users := newFakeUserStore()
	seedUser(t, users, "admin@gmail.com", models.RoleAdmin)
	seedUser(t, users, "guardian@x.com", models.RoleGuardian)
	router := newUserTestRouter(users, cfg)

	resp, _ := doRequest(t, router, http.MethodGet, "/api/v1/users",
		tokenFor(t, cfg, "guardian@x.com", models.RoleGuardian), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for guardian, got %d", resp.Code)
	}

	resp, env := doRequest(t, router, http.MethodGet, "/api/v1/users",
		tokenFor(t, cfg, "admin@gmail.com", models.RoleAdmin), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for admin, got %d", resp.Code)
	}
	var listed []models.UserSanitized
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("failed to decode user list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 users, got %d", len(listed))
	}
}

func TestDeleteGuardianAccount(t *testing.T) {
	cfg := testConfig()
	users := newFakeUserStore()
	seedUser(t, users, "admin@gmail.com", models.RoleAdmin)
	guardian := seedUser(t, users, "guardian@x.com", models.RoleGuardian)
	router := newUserTestRouter(users, cfg)
	adminToken := tokenFor(t, cfg, "admin@gmail.com", models.RoleAdmin)

	resp, _ := doRequest(t, router, http.MethodDelete, "/api/v1/users/"+guardian.ID, adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on delete, got %d: %s", resp.Code, resp.Body.String())
	}
	if _, ok := users.users[guardian.ID]; ok {
		t.Fatalf("expected guardian account to be removed")
	}

	// A second delete of the same account reports not found
	resp, _ = doRequest(t, router, http.MethodDelete, "/api/v1/users/"+guardian.ID, adminToken, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on repeated delete, got %d", resp.Code)
	}
}

func TestDeleteAdminAccountRejected(t *testing.T) {
	cfg := testConfig()
	users := newFakeUserStore()
	admin := seedUser(t, users, "admin@gmail.com", models.RoleAdmin)
	router := newUserTestRouter(users, cfg)

	resp, _ := doRequest(t, router, http.MethodDelete, "/api/v1/users/"+admin.ID,
		tokenFor(t, cfg, "admin@gmail.com", models.RoleAdmin), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for admin account delete, got %d", resp.Code)
	}
	if _, ok := users.users[admin.ID]; !ok {
		t.Fatalf("expected admin account to survive the delete attempt")
	}
}
