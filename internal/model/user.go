package model

import (
	"errors"
	"time"
)

// UserModel stores an account that can submit or act on documents.
type UserModel struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role          string    `gorm:"type:varchar(32);not null;index" json:"role"`
	DesignationID *string   `gorm:"type:varchar(64);index" json:"designation_id,omitempty"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`

	Designation *DesignationModel `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
}

// TableName specifies the table name
func (UserModel) TableName() string {
	return "users"
}

// Validate validates the user model
func (um *UserModel) Validate() error {
	if um.ID == "" {
		return errors.New("user ID is required")
	}
	if um.Email == "" {
		return errors.New("email is required")
	}
	if um.Name == "" {
		return errors.New("name is required")
	}
	if um.Role == "" {
		return errors.New("role is required")
	}
	return nil
}
