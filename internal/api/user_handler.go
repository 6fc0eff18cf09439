package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"breedid-backend/internal/core"
	"breedid-backend/internal/middleware"
	"breedid-backend/internal/models"
)

const usersPageLimit = 20

// UserHandler serves profile and user-administration endpoints.
type UserHandler struct {
	users core.UserService
	log   *zap.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users core.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// GetProfile handles GET /users/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "authentication required"})
		return
	}
	respondData(c, http.StatusOK, "", user)
}

// UpdateProfile handles PUT /users/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "authentication required"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, "profile updated", updated)
}

// List handles GET /users. Requires OFFICER or higher.
func (h *UserHandler) List(c *gin.Context) {
	page, limit := ParsePageQuery(c, usersPageLimit)
	users, total, err := h.users.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondPage(c, users, NewPagination(page, limit, total))
}

// Stats handles GET /users/stats. Requires OFFICER or higher.
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, "", stats)
}

// UpdateRole handles PUT /users/:id/role. Requires ADMIN.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: role is required"})
		return
	}

	updated, err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, "role updated", updated)
}

// Deactivate handles DELETE /users/:id. Requires ADMIN. Deactivation is the
// only delete this API offers; rows stay in the store.
func (h *UserHandler) Deactivate(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "authentication required"})
		return
	}

	if err := h.users.Deactivate(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, "user deactivated", nil)
}
