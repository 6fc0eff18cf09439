package models

import "time"

// Prediction stores one breed classification returned by the scoring
// service. Rows are immutable after creation and always belong to exactly
// one user. Upload and classifier metadata is flattened into columns.
type Prediction struct {
	ID                    string  `gorm:"primaryKey;size:36" json:"id"`
	UserID                string  `gorm:"size:36;not null;index" json:"userId"`
	User                  *User   `gorm:"foreignKey:UserID" json:"-"`
	BreedName             string  `gorm:"size:128;not null;index" json:"breedName"`
	Confidence            float64 `gorm:"not null" json:"confidence"`
	ProcessingTimeSeconds float64 `json:"processingTimeSeconds"`

	ImageFilename    string `gorm:"size:255" json:"imageFilename,omitempty"`
	ImageSizeBytes   int64  `json:"imageSizeBytes,omitempty"`
	ImageContentType string `gorm:"size:64" json:"imageContentType,omitempty"`

	BreedOrigin      string `gorm:"size:128" json:"breedOrigin,omitempty"`
	BreedDescription string `gorm:"type:text" json:"breedDescription,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the table name for GORM.
func (Prediction) TableName() string {
	return "predictions"
}

// BreedCount is one bucket of the per-breed prediction aggregation.
type BreedCount struct {
	BreedName string `json:"breedName"`
	Count     int64  `json:"count"`
}

// PredictionStats summarizes the predictions table. Recomputed from the
// store on every call, there is no caching layer in front of it.
type PredictionStats struct {
	Total             int64        `json:"total"`
	AverageConfidence float64      `json:"averageConfidence"`
	ByBreed           []BreedCount `json:"byBreed"`
}
