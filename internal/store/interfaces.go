package store

import (
	"context"

	"breedid-backend/internal/models"
)

// UserRepository defines the storage operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// List returns a page of users ordered by creation time descending,
	// plus the total row count for the pagination envelope.
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
	// Deactivate flips IsActive off. Users are never hard-deleted.
	Deactivate(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.UserStats, error)
}

// PredictionRepository defines the storage operations for prediction rows.
// Predictions are insert-only; there is no update path.
type PredictionRepository interface {
	Create(ctx context.Context, p *models.Prediction) error
	GetByID(ctx context.Context, id string) (*models.Prediction, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Prediction, int64, error)
	Stats(ctx context.Context) (*models.PredictionStats, error)
}
