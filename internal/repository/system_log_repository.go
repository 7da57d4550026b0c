package repository

import (
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// SystemLogRepository provides access to the audit trail.
type SystemLogRepository interface {
	Save(log *model.SystemLogModel) error
	FindByUserID(userID string, limit int) ([]*model.SystemLogModel, error)
	FindByResource(resourceType string, resourceID string) ([]*model.SystemLogModel, error)
	FindByFilter(filter *SystemLogFilter) ([]*model.SystemLogModel, int64, error)
}

// SystemLogFilter narrows audit trail listings.
type SystemLogFilter struct {
	UserID       *string
	Action       *string
	ResourceType *string
	Page         int
	PageSize     int
}

// systemLogRepository implements SystemLogRepository.
type systemLogRepository struct {
	db *gorm.DB
}

// NewSystemLogRepository creates a system log repository.
func NewSystemLogRepository(db *gorm.DB) SystemLogRepository {
	return &systemLogRepository{db: db}
}

// Save saves an audit entry.
func (r *systemLogRepository) Save(log *model.SystemLogModel) error {
	return r.db.Save(log).Error
}

// FindByUserID lists a user's audit entries newest first.
func (r *systemLogRepository) FindByUserID(userID string, limit int) ([]*model.SystemLogModel, error) {
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var logs []*model.SystemLogModel
	err := query.Find(&logs).Error
	return logs, err
}

// FindByResource lists audit entries touching a resource.
func (r *systemLogRepository) FindByResource(resourceType string, resourceID string) ([]*model.SystemLogModel, error) {
	var logs []*model.SystemLogModel
	err := r.db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// FindByFilter lists audit entries matching the filter with the total count.
func (r *systemLogRepository) FindByFilter(filter *SystemLogFilter) ([]*model.SystemLogModel, int64, error) {
	query := r.db.Model(&model.SystemLogModel{})

	if filter != nil {
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
		if filter.Action != nil {
			query = query.Where("action = ?", *filter.Action)
		}
		if filter.ResourceType != nil {
			query = query.Where("resource_type = ?", *filter.ResourceType)
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

	var logs []*model.SystemLogModel
	err := query.Order("created_at DESC").Find(&logs).Error
	return logs, total, err
}
