package model

import (
	"errors"
	"time"
)

// SignatureModel holds a user's signature image plus the encrypted
// numeric passcode that authorizes affixing it. One row per user.
type SignatureModel struct {
	ID                string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID            string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"user_id"`
	ImageURI          string    `gorm:"type:text;not null" json:"image_uri"`
	EncryptedPasscode string    `gorm:"type:text;not null" json:"-"` // AES-256-GCM, base64
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name
func (SignatureModel) TableName() string {
	return "signatures"
}

// Validate validates the signature model
func (sm *SignatureModel) Validate() error {
	if sm.ID == "" {
		return errors.New("signature ID is required")
	}
	if sm.UserID == "" {
		return errors.New("user ID is required")
	}
	if sm.ImageURI == "" {
		return errors.New("image URI is required")
	}
	if sm.EncryptedPasscode == "" {
		return errors.New("passcode is required")
	}
	return nil
}
