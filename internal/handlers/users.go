package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"child-clinic-server/internal/models"
	"child-clinic-server/internal/store"
	"child-clinic-server/internal/utils"
)

// UserHandler handles guardian account administration (admin only).
type UserHandler struct {
	Users store.UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

// GetUsers handles fetching all registered accounts (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.Users.ListAll(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitizedUsers := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitizedUsers[i] = u.Sanitize()
	}

	utils.Success(c, "Users fetched successfully", sanitizedUsers)
}

// GetUserByID handles fetching a single account by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// DeleteUser handles deleting a guardian account by ID (admin). The
// guardian's appointments are kept; they remain visible to the admin.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if user.Role == models.RoleAdmin {
		utils.Forbidden(c, "The admin account cannot be deleted")
		return
	}

	if err := h.Users.DeleteByID(c.Request.Context(), userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	utils.Success(c, "User deleted successfully", nil)
}
