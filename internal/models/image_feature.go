package models

import (
	"time"

	"github.com/google/uuid"
)

// ImageFeature represents the persisted numeric properties of one uploaded
// image, as computed by the classification service.
type ImageFeature struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Path       string    `gorm:"uniqueIndex" json:"path"`
	FileSizeKB int       `gorm:"column:file_size_kb" json:"file_size_kb"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	MeanR      *float64  `gorm:"column:mean_r" json:"mean_r,omitempty"`
	MeanG      *float64  `gorm:"column:mean_g" json:"mean_g,omitempty"`
	MeanB      *float64  `gorm:"column:mean_b" json:"mean_b,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
