package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"breedid-backend/internal/models"
)

// topBreedBuckets caps the per-breed aggregation so the stats payload stays
// bounded as the label set grows.
const topBreedBuckets = 25

// gormPredictionRepository implements PredictionRepository on PostgreSQL.
type gormPredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a GORM-backed PredictionRepository.
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &gormPredictionRepository{db: db}
}

func (r *gormPredictionRepository) Create(ctx context.Context, p *models.Prediction) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}
	return nil
}

func (r *gormPredictionRepository) GetByID(ctx context.Context, id string) (*models.Prediction, error) {
	var p models.Prediction
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *gormPredictionRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Prediction, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count predictions for user %s: %w", userID, err)
	}

	rows := make([]models.Prediction, 0, limit)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list predictions for user %s: %w", userID, err)
	}
	return rows, total, nil
}

func (r *gormPredictionRepository) Stats(ctx context.Context) (*models.PredictionStats, error) {
	var stats models.PredictionStats

	if err := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}
	// COALESCE keeps the average well-defined on an empty table.
	if err := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Select("COALESCE(AVG(confidence), 0)").
		Scan(&stats.AverageConfidence).Error; err != nil {
		return nil, fmt.Errorf("failed to average confidence: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&models.Prediction{}).
		Select("breed_name, COUNT(*) AS count").
		Group("breed_name").
		Order("count DESC").
		Limit(topBreedBuckets).
		Scan(&stats.ByBreed).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate predictions by breed: %w", err)
	}
	return &stats, nil
}
