package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"breedid-backend/internal/models"
)

// RequireRole enforces a role floor: the request proceeds iff the caller's
// role meets or exceeds floor. Role capability sets are nested, so a single
// floor comparison replaces per-route role lists and new roles slot in
// without touching call sites.
func RequireRole(floor models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "authentication required"})
			return
		}
		if !user.Role.Meets(floor) {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{
				Error: fmt.Sprintf("requires role %s or higher, you have %s", floor, user.Role),
			})
			return
		}
		c.Next()
	}
}
