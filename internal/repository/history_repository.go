package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// HistoryRepository provides read access to the transition ledger.
// Writes happen inside workflow transactions, never here.
type HistoryRepository interface {
	FindByDocumentID(documentID string) ([]*model.DocumentHistoryModel, error)
	FindLatestByDocumentID(documentID string) (*model.DocumentHistoryModel, error)
	FindInRange(from, to time.Time) ([]*model.DocumentHistoryModel, error)
}

// historyRepository implements HistoryRepository.
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a history repository.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// FindByDocumentID lists a document's ledger entries oldest first.
func (r *historyRepository) FindByDocumentID(documentID string) ([]*model.DocumentHistoryModel, error) {
	var entries []*model.DocumentHistoryModel
	err := r.db.Where("document_id = ?", documentID).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}

// FindLatestByDocumentID returns the most recent ledger entry.
func (r *historyRepository) FindLatestByDocumentID(documentID string) (*model.DocumentHistoryModel, error) {
	var entry model.DocumentHistoryModel
	if err := r.db.Where("document_id = ?", documentID).
		Order("created_at DESC").First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindInRange lists ledger entries created within [from, to).
func (r *historyRepository) FindInRange(from, to time.Time) ([]*model.DocumentHistoryModel, error) {
	var entries []*model.DocumentHistoryModel
	err := r.db.Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}
