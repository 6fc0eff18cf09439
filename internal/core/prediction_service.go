package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"breedid-backend/internal/classifier"
	"breedid-backend/internal/models"
	"breedid-backend/internal/store"
)

// MaxUploadBytes is the upload size ceiling.
const MaxUploadBytes = 10 << 20

// allowedImageTypes is the upload media-type allow-list. Checked before any
// network call to the scoring service.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// predictionService implements PredictionService.
type predictionService struct {
	predictions store.PredictionRepository
	scorer      Classifier
	log         *zap.Logger
}

// NewPredictionService creates a PredictionService.
func NewPredictionService(predictions store.PredictionRepository, scorer Classifier, log *zap.Logger) PredictionService {
	return &predictionService{predictions: predictions, scorer: scorer, log: log}
}

// Classify runs the full orchestration: validate the upload, probe the
// scorer's liveness, submit the image, persist the result. The liveness
// probe fails the whole operation early so an unreachable scorer gives a
// signal distinct from a mid-call network error, and no row is written.
func (s *predictionService) Classify(ctx context.Context, user *models.User, upload Upload) (*ClassificationResult, error) {
	if upload.Reader == nil || upload.Filename == "" {
		return nil, fmt.Errorf("%w: image file is required", ErrInvalidRequest)
	}
	if !allowedImageTypes[upload.ContentType] {
		return nil, fmt.Errorf("%w: unsupported file type %q (allowed: JPEG, PNG, WebP)", ErrInvalidRequest, upload.ContentType)
	}
	if upload.Size > MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds the %d MiB limit", ErrInvalidRequest, MaxUploadBytes>>20)
	}

	if err := s.scorer.Health(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	start := time.Now()
	result, err := s.scorer.Predict(ctx, upload.Filename, upload.ContentType, upload.Reader)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		return nil, translateScorerErr(err)
	}

	processingTime := result.ProcessingTime
	if processingTime <= 0 {
		processingTime = elapsed
	}

	prediction := &models.Prediction{
		ID:                    uuid.NewString(),
		UserID:                user.ID,
		BreedName:             result.Prediction,
		Confidence:            result.Confidence,
		ProcessingTimeSeconds: processingTime,
		ImageFilename:         upload.Filename,
		ImageSizeBytes:        upload.Size,
		ImageContentType:      upload.ContentType,
	}
	if result.BreedInfo != nil {
		prediction.BreedOrigin = result.BreedInfo.Origin
		prediction.BreedDescription = result.BreedInfo.Description
	}

	if err := s.predictions.Create(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to persist prediction for user %s: %w", user.ID, err)
	}
	s.log.Info("stored prediction",
		zap.String("predictionId", prediction.ID),
		zap.String("userId", user.ID),
		zap.String("breed", prediction.BreedName),
		zap.Float64("confidence", prediction.Confidence),
		zap.Float64("processingTime", processingTime))

	return &ClassificationResult{Prediction: prediction, BreedInfo: result.BreedInfo}, nil
}

func (s *predictionService) History(ctx context.Context, userID string, page, limit int) ([]models.Prediction, int64, error) {
	offset := (page - 1) * limit
	rows, total, err := s.predictions.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list predictions: %w", err)
	}
	return rows, total, nil
}

func (s *predictionService) GetByID(ctx context.Context, caller *models.User, id string) (*models.Prediction, error) {
	p, err := s.predictions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: prediction %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get prediction %s: %w", id, err)
	}
	if p.UserID != caller.ID && !caller.Role.Meets(models.RoleOfficer) {
		return nil, fmt.Errorf("%w: prediction belongs to another user", ErrForbidden)
	}
	return p, nil
}

func (s *predictionService) Stats(ctx context.Context) (*models.PredictionStats, error) {
	stats, err := s.predictions.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute prediction stats: %w", err)
	}
	return stats, nil
}

func (s *predictionService) Breeds(ctx context.Context) ([]string, error) {
	breeds, err := s.scorer.Breeds(ctx)
	if err != nil {
		return nil, translateScorerErr(err)
	}
	return breeds, nil
}

func (s *predictionService) BreedInfo(ctx context.Context, name string) (*classifier.BreedInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: breed name is required", ErrInvalidRequest)
	}
	info, err := s.scorer.BreedInfoByName(ctx, name)
	if err != nil {
		return nil, translateScorerErr(err)
	}
	return info, nil
}

// translateScorerErr maps classifier sentinels onto the operation-level
// taxonomy.
func translateScorerErr(err error) error {
	switch {
	case errors.Is(err, classifier.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	case errors.Is(err, classifier.ErrBadImage):
		return fmt.Errorf("%w: the image could not be processed", ErrInvalidRequest)
	case errors.Is(err, classifier.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, classifier.ErrUpstream):
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	default:
		return err
	}
}
