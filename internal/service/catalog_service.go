package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/opencampus/doctrack/internal/workflow"
)

// CatalogService manages designations and document categories.
type CatalogService interface {
	CreateDesignation(name string) (*model.DesignationModel, error)
	ListDesignations() ([]*model.DesignationModel, error)
	DeleteDesignation(id string) error

	CreateCategory(name string, kind string, templateURI string) (*model.DocumentCategoryModel, error)
	ListCategories() ([]*model.DocumentCategoryModel, error)
	DeleteCategory(id string) error
}

// catalogService implements CatalogService.
type catalogService struct {
	designations repository.DesignationRepository
	categories   repository.CategoryRepository
}

// NewCatalogService creates a catalog service.
func NewCatalogService(designations repository.DesignationRepository, categories repository.CategoryRepository) CatalogService {
	return &catalogService{designations: designations, categories: categories}
}

// CreateDesignation adds an organizational unit.
func (s *catalogService) CreateDesignation(name string) (*model.DesignationModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, workflow.Validation("designation name is required")
	}

	now := time.Now()
	designation := &model.DesignationModel{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.designations.Save(designation); err != nil {
		return nil, err
	}
	return designation, nil
}

// ListDesignations lists all units.
func (s *catalogService) ListDesignations() ([]*model.DesignationModel, error) {
	return s.designations.FindAll()
}

// DeleteDesignation removes a unit.
func (s *catalogService) DeleteDesignation(id string) error {
	if _, err := s.designations.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.ErrNotFound
		}
		return err
	}
	return s.designations.Delete(id)
}

// CreateCategory adds a document category. Kind selects the review
// branch for documents filed under it.
func (s *catalogService) CreateCategory(name string, kind string, templateURI string) (*model.DocumentCategoryModel, error) {
	now := time.Now()
	category := &model.DocumentCategoryModel{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Kind:        kind,
		TemplateURI: templateURI,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := category.Validate(); err != nil {
		return nil, workflow.Validation(err.Error())
	}
	if err := s.categories.Save(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all categories.
func (s *catalogService) ListCategories() ([]*model.DocumentCategoryModel, error) {
	return s.categories.FindAll()
}

// DeleteCategory removes a category.
func (s *catalogService) DeleteCategory(id string) error {
	if _, err := s.categories.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.ErrNotFound
		}
		return err
	}
	return s.categories.Delete(id)
}
