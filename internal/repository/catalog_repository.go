package repository

import (
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// DesignationRepository provides access to organizational units.
type DesignationRepository interface {
	Save(designation *model.DesignationModel) error
	FindByID(id string) (*model.DesignationModel, error)
	FindAll() ([]*model.DesignationModel, error)
	Delete(id string) error
}

// CategoryRepository provides access to document categories.
type CategoryRepository interface {
	Save(category *model.DocumentCategoryModel) error
	FindByID(id string) (*model.DocumentCategoryModel, error)
	FindAll() ([]*model.DocumentCategoryModel, error)
	Delete(id string) error
}

// designationRepository implements DesignationRepository.
type designationRepository struct {
	db *gorm.DB
}

// NewDesignationRepository creates a designation repository.
func NewDesignationRepository(db *gorm.DB) DesignationRepository {
	return &designationRepository{db: db}
}

// Save saves a designation.
func (r *designationRepository) Save(designation *model.DesignationModel) error {
	return r.db.Save(designation).Error
}

// FindByID finds a designation with its authorized categories.
func (r *designationRepository) FindByID(id string) (*model.DesignationModel, error) {
	var designation model.DesignationModel
	if err := r.db.Preload("Categories").Where("id = ?", id).First(&designation).Error; err != nil {
		return nil, err
	}
	return &designation, nil
}

// FindAll lists all designations.
func (r *designationRepository) FindAll() ([]*model.DesignationModel, error) {
	var designations []*model.DesignationModel
	err := r.db.Preload("Categories").Order("name ASC").Find(&designations).Error
	return designations, err
}

// Delete removes a designation.
func (r *designationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.DesignationModel{}).Error
}

// categoryRepository implements CategoryRepository.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Save saves a category.
func (r *categoryRepository) Save(category *model.DocumentCategoryModel) error {
	return r.db.Save(category).Error
}

// FindByID finds a category by ID.
func (r *categoryRepository) FindByID(id string) (*model.DocumentCategoryModel, error) {
	var category model.DocumentCategoryModel
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAll lists all categories.
func (r *categoryRepository) FindAll() ([]*model.DocumentCategoryModel, error) {
	var categories []*model.DocumentCategoryModel
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// Delete removes a category.
func (r *categoryRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.DocumentCategoryModel{}).Error
}
