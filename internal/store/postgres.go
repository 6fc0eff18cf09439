package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"breedid-backend/internal/models"
)

// ErrNotFound is returned when a requested row does not exist. It hides
// gorm.ErrRecordNotFound from the layers above.
var ErrNotFound = errors.New("record not found")

// Open connects to PostgreSQL and migrates the schema. The returned *gorm.DB
// owns the connection pool for the lifetime of the process.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Prediction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
