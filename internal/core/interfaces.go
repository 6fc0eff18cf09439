package core

import (
	"context"
	"io"

	"firebase.google.com/go/v4/auth"

	"breedid-backend/internal/classifier"
	"breedid-backend/internal/models"
)

// TokenVerifier verifies a bearer credential and yields its decoded token.
// *auth.Client satisfies it; tests substitute fakes.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Classifier is the slice of the scoring-service client the prediction
// service depends on.
type Classifier interface {
	Health(ctx context.Context) error
	Predict(ctx context.Context, filename, contentType string, image io.Reader) (*classifier.PredictResult, error)
	Breeds(ctx context.Context) ([]string, error)
	BreedInfoByName(ctx context.Context, name string) (*classifier.BreedInfo, error)
}

// UserService defines user and authentication operations.
type UserService interface {
	// Authenticate verifies the bearer token and resolves it to a local
	// user, creating one with the default role on first sight. The bool
	// reports whether the user was created by this call.
	Authenticate(ctx context.Context, idToken string) (*models.User, bool, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error)
	UpdateRole(ctx context.Context, id string, role string) (*models.User, error)
	Deactivate(ctx context.Context, callerID, id string) error
	List(ctx context.Context, page, limit int) ([]models.User, int64, error)
	Stats(ctx context.Context) (*models.UserStats, error)
}

// Upload describes an image payload received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ClassificationResult pairs the persisted prediction with the
// classifier-supplied breed metadata.
type ClassificationResult struct {
	Prediction *models.Prediction    `json:"prediction"`
	BreedInfo  *classifier.BreedInfo `json:"breedInfo,omitempty"`
}

// PredictionService defines classification and prediction-history
// operations.
type PredictionService interface {
	Classify(ctx context.Context, user *models.User, upload Upload) (*ClassificationResult, error)
	History(ctx context.Context, userID string, page, limit int) ([]models.Prediction, int64, error)
	// GetByID enforces ownership: the owner may always read, officers and
	// admins may read any row.
	GetByID(ctx context.Context, caller *models.User, id string) (*models.Prediction, error)
	Stats(ctx context.Context) (*models.PredictionStats, error)
	Breeds(ctx context.Context) ([]string, error)
	BreedInfo(ctx context.Context, name string) (*classifier.BreedInfo, error)
}
