package model

import (
	"errors"
	"time"
)

// DesignationModel is an organizational department or unit.
type DesignationModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Categories this unit is authorized to handle.
	Categories []*DocumentCategoryModel `gorm:"many2many:designation_categories" json:"categories,omitempty"`
}

// TableName specifies the table name
func (DesignationModel) TableName() string {
	return "designations"
}

// Validate validates the designation model
func (dm *DesignationModel) Validate() error {
	if dm.ID == "" {
		return errors.New("designation ID is required")
	}
	if dm.Name == "" {
		return errors.New("designation name is required")
	}
	return nil
}
