package repository

import (
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// BackupRepository provides access to backup records.
type BackupRepository interface {
	Save(backup *model.BackupModel) error
	FindByID(id string) (*model.BackupModel, error)
	FindAll() ([]*model.BackupModel, error)
	Delete(id string) error
}

// backupRepository implements BackupRepository.
type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a backup repository.
func NewBackupRepository(db *gorm.DB) BackupRepository {
	return &backupRepository{db: db}
}

// Save saves a backup record.
func (r *backupRepository) Save(backup *model.BackupModel) error {
	return r.db.Save(backup).Error
}

// FindByID finds a backup record by ID.
func (r *backupRepository) FindByID(id string) (*model.BackupModel, error) {
	var backup model.BackupModel
	if err := r.db.Where("id = ?", id).First(&backup).Error; err != nil {
		return nil, err
	}
	return &backup, nil
}

// FindAll lists backup records newest first.
func (r *backupRepository) FindAll() ([]*model.BackupModel, error) {
	var backups []*model.BackupModel
	err := r.db.Order("created_at DESC").Find(&backups).Error
	return backups, err
}

// Delete removes a backup record.
func (r *backupRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.BackupModel{}).Error
}
