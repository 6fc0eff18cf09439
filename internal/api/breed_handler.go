package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"breedid-backend/internal/core"
)

// BreedHandler serves the public informational breed endpoints. These are
// deliberately outside the auth gate: they expose no user data and the
// mobile client shows them before login.
type BreedHandler struct {
	predictions core.PredictionService
	log         *zap.Logger
}

// NewBreedHandler creates a BreedHandler.
func NewBreedHandler(predictions core.PredictionService, log *zap.Logger) *BreedHandler {
	return &BreedHandler{predictions: predictions, log: log}
}

// List handles GET /breeds.
func (h *BreedHandler) List(c *gin.Context) {
	breeds, err := h.predictions.Breeds(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, "", gin.H{"breeds": breeds})
}

// Info handles GET /breeds/:name.
func (h *BreedHandler) Info(c *gin.Context) {
	info, err := h.predictions.BreedInfo(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, "", info)
}
