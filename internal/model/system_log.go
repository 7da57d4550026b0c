package model

import (
	"errors"
	"time"
)

// SystemLogModel is the audit trail: one row per mutating operation.
type SystemLogModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID       string    `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Action       string    `gorm:"type:varchar(64);not null;index" json:"action"`
	ResourceType string    `gorm:"type:varchar(32);not null" json:"resource_type"`
	ResourceID   string    `gorm:"type:varchar(64);not null;index" json:"resource_id"`
	RequestID    string    `gorm:"type:varchar(64);index" json:"request_id,omitempty"`
	IP           string    `gorm:"type:varchar(45)" json:"ip,omitempty"` // IPv4 or IPv6
	UserAgent    string    `gorm:"type:text" json:"user_agent,omitempty"`
	Details      []byte    `gorm:"type:text" json:"-"` // JSON payload
	CreatedAt    time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name
func (SystemLogModel) TableName() string {
	return "system_logs"
}

// Validate validates the system log model
func (lm *SystemLogModel) Validate() error {
	if lm.ID == "" {
		return errors.New("log ID is required")
	}
	if lm.UserID == "" {
		return errors.New("user ID is required")
	}
	if lm.Action == "" {
		return errors.New("action is required")
	}
	if lm.ResourceType == "" {
		return errors.New("resource type is required")
	}
	if lm.ResourceID == "" {
		return errors.New("resource ID is required")
	}
	return nil
}
