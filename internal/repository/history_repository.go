package repository

import (
	"gorm.io/gorm"

	"image-service/internal/models"
)

// HistoryCap is the hard limit on entries returned by ListRecent. There is
// no pagination cursor; older entries are simply not served.
const HistoryCap = 100

// HistoryRepository defines read and write access to the upload history.
type HistoryRepository interface {
	CreateHistory(entry *models.HistoryEntry) error
	ListRecent(limit int) ([]models.HistoryEntry, error)
}

// HistoryRepositoryImpl provides methods to interact with the HistoryEntry
// model in the database.
type HistoryRepositoryImpl struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepositoryImpl instance with the
// provided GORM database connection.
func NewHistoryRepository(db *gorm.DB) *HistoryRepositoryImpl {
	return &HistoryRepositoryImpl{db: db}
}

// CreateHistory inserts a new HistoryEntry row. Entries are never updated
// after creation.
func (r *HistoryRepositoryImpl) CreateHistory(entry *models.HistoryEntry) error {
	return r.db.Create(entry).Error
}

// ListRecent returns the most recent entries ordered by creation time
// descending, capped at HistoryCap.
func (r *HistoryRepositoryImpl) ListRecent(limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 || limit > HistoryCap {
		limit = HistoryCap
	}
	var entries []models.HistoryEntry
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
