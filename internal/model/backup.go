package model

import (
	"errors"
	"time"
)

// BackupModel records one database snapshot on disk.
type BackupModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Filename  string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"filename"`
	Path      string    `gorm:"type:text;not null" json:"path"`
	Size      int64     `gorm:"not null" json:"size"`
	CreatedBy string    `gorm:"type:varchar(64)" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name
func (BackupModel) TableName() string {
	return "backups"
}

// Validate validates the backup model
func (bm *BackupModel) Validate() error {
	if bm.ID == "" {
		return errors.New("backup ID is required")
	}
	if bm.Filename == "" {
		return errors.New("filename is required")
	}
	if bm.Path == "" {
		return errors.New("path is required")
	}
	return nil
}
