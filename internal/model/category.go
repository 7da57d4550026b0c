package model

import (
	"errors"
	"time"
)

// Category kinds drive which vice-presidential branch reviews the document.
const (
	CategoryKindAcademic       = "academic"
	CategoryKindAdministrative = "administrative"
)

// DocumentCategoryModel classifies document types.
type DocumentCategoryModel struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Kind        string    `gorm:"type:varchar(32);not null;default:'academic'" json:"kind"`
	TemplateURI string    `gorm:"type:text" json:"template_uri,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name
func (DocumentCategoryModel) TableName() string {
	return "document_categories"
}

// Validate validates the category model
func (cm *DocumentCategoryModel) Validate() error {
	if cm.ID == "" {
		return errors.New("category ID is required")
	}
	if cm.Name == "" {
		return errors.New("category name is required")
	}
	if cm.Kind != CategoryKindAcademic && cm.Kind != CategoryKindAdministrative {
		return errors.New("category kind must be academic or administrative")
	}
	return nil
}
