package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one completed upload event. ImageID references the
// feature row when its insert succeeded; it stays nil when that insert
// failed, so a storage hiccup never suppresses the history record.
type HistoryEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"-"`
	ImageID    *uuid.UUID `gorm:"type:uuid" json:"-"`
	Path       string     `json:"path"`
	Label      string     `json:"label"`
	Annotation string     `json:"annotation"`
	Location   string     `json:"location"`
	CreatedAt  time.Time  `json:"created_at"`
}
