package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		pages int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 20, 2},
		{100, 100, 1},
	}
	for _, tt := range tests {
		p := NewPagination(1, tt.limit, tt.total)
		if p.Pages != tt.pages {
			t.Errorf("total=%d limit=%d: pages=%d, want %d", tt.total, tt.limit, p.Pages, tt.pages)
		}
	}
}

func pageContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParsePageQuery(t *testing.T) {
	tests := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, 10},
		{"page=3&limit=5", 3, 5},
		{"page=0", 1, 10},
		{"page=-2", 1, 10},
		{"page=abc", 1, 10},
		{"limit=0", 1, 10},
		{"limit=500", 1, 100},
	}
	for _, tt := range tests {
		page, limit := ParsePageQuery(pageContext(t, tt.query), 10)
		if page != tt.page || limit != tt.limit {
			t.Errorf("query %q: got (%d,%d), want (%d,%d)", tt.query, page, limit, tt.page, tt.limit)
		}
	}
}
