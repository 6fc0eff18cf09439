package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"breedid-backend/internal/core"
	"breedid-backend/internal/middleware"
	"breedid-backend/internal/models"
)

// AuthHandler serves the authenticate-or-register endpoint.
type AuthHandler struct {
	users core.UserService
	log   *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users core.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

// authData is the data payload of a successful login/register call.
type authData struct {
	User      *models.User `json:"user"`
	Role      models.Role  `json:"role"`
	IsNewUser bool         `json:"isNewUser"`
}

// Authenticate handles POST /auth/login and POST /auth/register. Both
// resolve to the same flow: verify the bearer token and get-or-create the
// local user. The route is not behind the auth gate because the gate
// requires an existing local record, which registration is about creating.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	idToken, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "authorization header with a bearer token is required"})
		return
	}

	user, isNew, err := h.users.Authenticate(c.Request.Context(), idToken)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	data := authData{User: user, Role: user.Role, IsNewUser: isNew}
	if isNew {
		respondData(c, http.StatusCreated, "user registered successfully", data)
		return
	}
	respondData(c, http.StatusOK, "login successful", data)
}
