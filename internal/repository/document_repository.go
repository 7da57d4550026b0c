package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// DocumentRepository provides access to documents and their assignatories.
type DocumentRepository interface {
	Save(doc *model.DocumentModel) error
	FindByID(id string) (*model.DocumentModel, error)
	FindByReferenceID(referenceID string) (*model.DocumentModel, error)
	FindByFilter(filter *DocumentFilter) ([]*model.DocumentModel, int64, error)
	CountByStatus() (map[string]int64, error)
	FindAssignatories(documentID string) ([]*model.AssignatoryModel, error)
	FindAssignedTo(userID string, stage string) ([]*model.DocumentModel, error)
}

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	Status        *string
	Stage         *string
	CategoryID    *string
	SubmittedByID *string
	Archived      *bool
	Search        *string
	From          *time.Time
	To            *time.Time
	Page          int
	PageSize      int
}

// documentRepository implements DocumentRepository.
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Save saves a document.
func (r *documentRepository) Save(doc *model.DocumentModel) error {
	return r.db.Save(doc).Error
}

// FindByID finds a document by ID with its category and submitter.
func (r *documentRepository) FindByID(id string) (*model.DocumentModel, error) {
	var doc model.DocumentModel
	if err := r.db.Preload("Category").Preload("SubmittedBy").
		Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByReferenceID finds a document by its public reference number.
func (r *documentRepository) FindByReferenceID(referenceID string) (*model.DocumentModel, error) {
	var doc model.DocumentModel
	if err := r.db.Preload("Category").Preload("SubmittedBy").
		Where("reference_id = ?", referenceID).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByFilter lists documents matching the filter, newest first,
// returning the page and the total match count.
func (r *documentRepository) FindByFilter(filter *DocumentFilter) ([]*model.DocumentModel, int64, error) {
	query := r.db.Model(&model.DocumentModel{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.Stage != nil {
			query = query.Where("stage = ?", *filter.Stage)
		}
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.SubmittedByID != nil {
			query = query.Where("submitted_by_id = ?", *filter.SubmittedByID)
		}
		if filter.Archived != nil {
			query = query.Where("is_archived = ?", *filter.Archived)
		}
		if filter.Search != nil {
			pattern := "%" + *filter.Search + "%"
			query = query.Where("title LIKE ? OR reference_id LIKE ?", pattern, pattern)
		}
		if filter.From != nil {
			query = query.Where("created_at >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("created_at <= ?", *filter.To)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter != nil && filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var docs []*model.DocumentModel
	err := query.Preload("Category").Preload("SubmittedBy").
		Order("created_at DESC").Find(&docs).Error
	return docs, total, err
}

// CountByStatus counts non-archived documents grouped by status.
func (r *documentRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&model.DocumentModel{}).
		Select("status, count(*) as count").
		Where("is_archived = ?", false).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// FindAssignatories lists all assignatory rows for a document.
func (r *documentRepository) FindAssignatories(documentID string) ([]*model.AssignatoryModel, error) {
	var rows []*model.AssignatoryModel
	err := r.db.Where("document_id = ?", documentID).
		Order("created_at ASC").Find(&rows).Error
	return rows, err
}

// FindAssignedTo lists non-archived documents waiting on a user.
// A non-empty stage restricts the match to documents currently at
// that stage.
func (r *documentRepository) FindAssignedTo(userID string, stage string) ([]*model.DocumentModel, error) {
	query := r.db.Model(&model.DocumentModel{}).
		Joins("JOIN assignatories ON assignatories.document_id = documents.id AND assignatories.stage = documents.stage").
		Where("assignatories.user_id = ?", userID).
		Where("documents.is_archived = ?", false)

	if stage != "" {
		query = query.Where("documents.stage = ?", stage)
	}

	var docs []*model.DocumentModel
	err := query.Preload("Category").Preload("SubmittedBy").
		Order("documents.created_at DESC").Find(&docs).Error
	return docs, err
}
