package model

import (
	"errors"
	"time"
)

// DocumentHistoryModel is one append-only ledger entry per transition.
// Rows are never updated or deleted; the ledger is the source of truth
// for tracking and reporting.
type DocumentHistoryModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	DocumentID    string    `gorm:"type:varchar(64);not null;index" json:"document_id"`
	Action        string    `gorm:"type:varchar(32);not null;index" json:"action"`
	Stage         string    `gorm:"type:varchar(32);not null" json:"stage"`  // stage the performer acted at
	Status        string    `gorm:"type:varchar(16);not null" json:"status"` // status snapshot after the transition
	PerformedByID string    `gorm:"type:varchar(64);not null;index" json:"performed_by_id"`
	Summary       string    `gorm:"type:varchar(255)" json:"summary"`
	Details       string    `gorm:"type:text" json:"details,omitempty"`
	CreatedAt     time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name
func (DocumentHistoryModel) TableName() string {
	return "document_history"
}

// Validate validates the history model
func (hm *DocumentHistoryModel) Validate() error {
	if hm.ID == "" {
		return errors.New("history ID is required")
	}
	if hm.DocumentID == "" {
		return errors.New("document ID is required")
	}
	if hm.Action == "" {
		return errors.New("action is required")
	}
	if hm.Stage == "" {
		return errors.New("stage is required")
	}
	if hm.PerformedByID == "" {
		return errors.New("performer ID is required")
	}
	return nil
}
