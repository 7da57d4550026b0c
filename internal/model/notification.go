package model

import (
	"errors"
	"time"
)

// Notification types emitted by workflow transitions.
const (
	NotificationDocumentSubmitted = "DOCUMENT_SUBMITTED"
	NotificationDocumentForwarded = "DOCUMENT_FORWARDED"
	NotificationDocumentApproved  = "DOCUMENT_APPROVED"
	NotificationDocumentRejected  = "DOCUMENT_REJECTED"
	NotificationDocumentReturned  = "DOCUMENT_RETURNED"
	NotificationCommentAdded      = "COMMENT_ADDED"
)

// NotificationModel is a per-user alert created as a side effect of a
// workflow transition. Notifications are owned by their recipient.
type NotificationModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Type      string    `gorm:"type:varchar(32);not null;index" json:"type"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Link      string    `gorm:"type:varchar(255)" json:"link,omitempty"`
	Metadata  []byte    `gorm:"type:text" json:"-"` // JSON payload
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name
func (NotificationModel) TableName() string {
	return "notifications"
}

// Validate validates the notification model
func (nm *NotificationModel) Validate() error {
	if nm.ID == "" {
		return errors.New("notification ID is required")
	}
	if nm.UserID == "" {
		return errors.New("user ID is required")
	}
	if nm.Type == "" {
		return errors.New("notification type is required")
	}
	if nm.Title == "" {
		return errors.New("title is required")
	}
	return nil
}
