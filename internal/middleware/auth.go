package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"breedid-backend/internal/core"
	"breedid-backend/internal/models"
)

// currentUserKey is the gin context key the auth gate stores the resolved
// user under.
const currentUserKey = "currentUser"

// errorBody mirrors the API response envelope. Defined locally to avoid an
// import cycle with internal/api.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// UserResolver resolves a verified subject identifier to the local user
// record. core.UserService satisfies it.
type UserResolver interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
}

// AuthGate is the per-request authorization gate: extract the bearer token,
// verify it, resolve the local user, reject deactivated principals, and
// attach the authorization context for downstream handlers.
type AuthGate struct {
	verifier core.TokenVerifier // nil in degraded mode
	users    UserResolver
	log      *zap.Logger
}

// NewAuthGate creates an AuthGate. A nil verifier is valid and puts the
// gate into degraded mode: every guarded route answers 503.
func NewAuthGate(verifier core.TokenVerifier, users UserResolver, log *zap.Logger) *AuthGate {
	return &AuthGate{verifier: verifier, users: users, log: log}
}

// Handler returns the gin middleware enforcing the gate.
func (g *AuthGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.verifier == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorBody{Error: "authentication is not configured"})
			return
		}

		idToken, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "authorization header with a bearer token is required"})
			return
		}

		token, err := g.verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			g.log.Debug("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "invalid or expired authentication token"})
			return
		}

		user, err := g.users.GetByFirebaseUID(c.Request.Context(), token.UID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				// The credential is valid but no local record exists,
				// distinct from a generic auth failure.
				c.AbortWithStatusJSON(http.StatusNotFound, errorBody{Error: "no account found for this identity, register first"})
				return
			}
			g.log.Error("failed to resolve user during auth", zap.String("firebaseUid", token.UID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Error: "failed to resolve user"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{Error: "account is deactivated"})
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// SetCurrentUser attaches the resolved user to the request context. The
// auth gate calls it once per request; tests use it to fabricate an
// authenticated context.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the user attached by the auth gate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
