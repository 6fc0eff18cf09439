package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"breedid-backend/internal/models"
)

func rbacRouter(floor models.Role, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if user != nil {
				c.Set(currentUserKey, user)
			}
			c.Next()
		},
		RequireRole(floor),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func TestRequireRole_FloorComparison(t *testing.T) {
	tests := []struct {
		name  string
		role  models.Role
		floor models.Role
		want  int
	}{
		{"farmer meets farmer", models.RoleFarmer, models.RoleFarmer, http.StatusOK},
		{"farmer below officer", models.RoleFarmer, models.RoleOfficer, http.StatusForbidden},
		{"farmer below admin", models.RoleFarmer, models.RoleAdmin, http.StatusForbidden},
		{"officer meets officer", models.RoleOfficer, models.RoleOfficer, http.StatusOK},
		{"officer below admin", models.RoleOfficer, models.RoleAdmin, http.StatusForbidden},
		{"admin meets everything", models.RoleAdmin, models.RoleFarmer, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{ID: "u1", Role: tt.role, IsActive: true}
			rec := httptest.NewRecorder()
			rbacRouter(tt.floor, user).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
			if rec.Code != tt.want {
				t.Fatalf("role %s vs floor %s: expected %d, got %d", tt.role, tt.floor, tt.want, rec.Code)
			}
		})
	}
}

func TestRequireRole_NoUserInContext(t *testing.T) {
	rec := httptest.NewRecorder()
	rbacRouter(models.RoleFarmer, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %d", rec.Code)
	}
}
