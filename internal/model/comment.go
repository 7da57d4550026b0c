package model

import (
	"errors"
	"time"
)

// DocumentCommentModel is a free-text remark on a document, visible to
// the submitter and current or past assignatories.
type DocumentCommentModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	DocumentID string    `gorm:"type:varchar(64);not null;index" json:"document_id"`
	AuthorID   string    `gorm:"type:varchar(64);not null;index" json:"author_id"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`

	Author *UserModel `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name
func (DocumentCommentModel) TableName() string {
	return "document_comments"
}

// Validate validates the comment model
func (cm *DocumentCommentModel) Validate() error {
	if cm.ID == "" {
		return errors.New("comment ID is required")
	}
	if cm.DocumentID == "" {
		return errors.New("document ID is required")
	}
	if cm.AuthorID == "" {
		return errors.New("author ID is required")
	}
	if cm.Body == "" {
		return errors.New("comment body is required")
	}
	return nil
}
