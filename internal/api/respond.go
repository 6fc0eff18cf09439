package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"breedid-backend/internal/core"
)

const maxPageLimit = 100

// Response is the uniform JSON envelope shared by every endpoint.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination is the envelope describing one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination builds the envelope; Pages is ceil(total/limit).
func NewPagination(page, limit int, total int64) *Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ParsePageQuery reads page and limit query parameters. page defaults to 1,
// limit to defaultLimit; both are clamped to sane bounds. A page beyond the
// last one is not an error, it yields an empty data set downstream.
func ParsePageQuery(c *gin.Context, defaultLimit int) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v >= 1 {
		page = v
	}
	limit = defaultLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil && v >= 1 {
		limit = v
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Pagination: p})
}

// respondError translates the operation-level error taxonomy into a stable
// HTTP status and a human-readable message. Unrecognized errors collapse
// into a generic 500 with the detail kept server-side.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, core.ErrAuthUnavailable):
		status, message = http.StatusServiceUnavailable, core.ErrAuthUnavailable.Error()
	case errors.Is(err, core.ErrAccountDisabled):
		status, message = http.StatusForbidden, core.ErrAccountDisabled.Error()
	case errors.Is(err, core.ErrForbidden):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, core.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, core.ErrInvalidRequest):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, core.ErrServiceUnavailable):
		status, message = http.StatusServiceUnavailable, "classification service is currently unavailable"
	case errors.Is(err, core.ErrUpstream):
		status, message = http.StatusBadGateway, "classification service returned an error"
	default:
		logger.Error("unhandled error", zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method))
	}

	c.JSON(status, Response{Success: false, Error: message})
}
