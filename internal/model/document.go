package model

import (
	"errors"
	"time"
)

// DocumentModel is the workflow subject. Status and Stage are the
// materialized projection of the history ledger and are only ever
// updated in the same transaction that appends a history row.
type DocumentModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ReferenceID     string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"reference_id"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	CategoryID      string    `gorm:"type:varchar(64);not null;index" json:"category_id"`
	Priority        string    `gorm:"type:varchar(16);not null;default:'Medium'" json:"priority"`
	Status          string    `gorm:"type:varchar(16);not null;index" json:"status"`
	Stage           string    `gorm:"type:varchar(32);not null;index" json:"stage"`
	SubmittedByID   string    `gorm:"type:varchar(64);not null;index" json:"submitted_by_id"`
	Attachments     []byte    `gorm:"type:text" json:"-"` // JSON list of file URIs
	RejectionReason *string   `gorm:"type:varchar(32)" json:"rejection_reason,omitempty"`
	RejectionDetail string    `gorm:"type:text" json:"rejection_detail,omitempty"`
	IsArchived      bool      `gorm:"not null;default:false;index" json:"is_archived"`
	CreatedAt       time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;index" json:"updated_at"`

	Category    *DocumentCategoryModel `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubmittedBy *UserModel             `gorm:"foreignKey:SubmittedByID" json:"submitted_by,omitempty"`
}

// TableName specifies the table name
func (DocumentModel) TableName() string {
	return "documents"
}

// Validate validates the document model
func (dm *DocumentModel) Validate() error {
	if dm.ID == "" {
		return errors.New("document ID is required")
	}
	if dm.ReferenceID == "" {
		return errors.New("reference ID is required")
	}
	if dm.Title == "" {
		return errors.New("title is required")
	}
	if dm.CategoryID == "" {
		return errors.New("category ID is required")
	}
	if dm.Status == "" {
		return errors.New("status is required")
	}
	if dm.Stage == "" {
		return errors.New("stage is required")
	}
	if dm.SubmittedByID == "" {
		return errors.New("submitter ID is required")
	}
	return nil
}

// AssignatoryModel binds a document to the users responsible for acting
// on it at a given stage. Rows for past stages are kept so past
// assignatories retain comment visibility.
type AssignatoryModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	DocumentID string    `gorm:"type:varchar(64);not null;index:idx_assignatories_doc_stage" json:"document_id"`
	UserID     string    `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Stage      string    `gorm:"type:varchar(32);not null;index:idx_assignatories_doc_stage" json:"stage"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name
func (AssignatoryModel) TableName() string {
	return "assignatories"
}

// Validate validates the assignatory model
func (am *AssignatoryModel) Validate() error {
	if am.ID == "" {
		return errors.New("assignatory ID is required")
	}
	if am.DocumentID == "" {
		return errors.New("document ID is required")
	}
	if am.UserID == "" {
		return errors.New("user ID is required")
	}
	if am.Stage == "" {
		return errors.New("stage is required")
	}
	return nil
}
