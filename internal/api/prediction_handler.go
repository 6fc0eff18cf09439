package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"breedid-backend/internal/core"
	"breedid-backend/internal/middleware"
)

const historyPageLimit = 10

// PredictionHandler serves classification and prediction-history endpoints.
type PredictionHandler struct {
	predictions core.PredictionService
	log         *zap.Logger
}

// NewPredictionHandler creates a PredictionHandler.
func NewPredictionHandler(predictions core.PredictionService, log *zap.Logger) *PredictionHandler {
	return &PredictionHandler{predictions: predictions, log: log}
}

// Classify handles POST /predictions/breed: multipart image upload in the
// "image" field, classified by the external scorer and persisted.
func (h *PredictionHandler) Classify(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "authentication required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "an image file is required in the 'image' field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "failed to read uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.predictions.Classify(c.Request.Context(), user, core.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, "image classified", result)
}

// History handles GET /predictions/history: the caller's own predictions,
// newest first.
func (h *PredictionHandler) History(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "authentication required"})
		return
	}

	page, limit := ParsePageQuery(c, historyPageLimit)
	rows, total, err := h.predictions.History(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondPage(c, rows, NewPagination(page, limit, total))
}

// Stats handles GET /predictions/stats. Requires OFFICER or higher.
func (h *PredictionHandler) Stats(c *gin.Context) {
	stats, err := h.predictions.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, "", stats)
}

// GetByID handles GET /predictions/:id. Owners read their own rows,
// officers and admins read any.
func (h *PredictionHandler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Error: "authentication required"})
		return
	}

	p, err := h.predictions.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, "", p)
}
