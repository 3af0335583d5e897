package repository

import (
	"gorm.io/gorm"

	"image-service/internal/models"
)

// FeatureRepository defines the write side of the image feature table.
type FeatureRepository interface {
	CreateFeature(feature *models.ImageFeature) error
}

// FeatureRepositoryImpl provides methods to interact with the ImageFeature
// model in the database.
type FeatureRepositoryImpl struct {
	db *gorm.DB
}

// NewFeatureRepository creates a new FeatureRepositoryImpl instance with the
// provided GORM database connection.
func NewFeatureRepository(db *gorm.DB) *FeatureRepositoryImpl {
	return &FeatureRepositoryImpl{db: db}
}

// CreateFeature inserts a new ImageFeature row.
func (r *FeatureRepositoryImpl) CreateFeature(feature *models.ImageFeature) error {
	return r.db.Create(feature).Error
}
