package repository

import (
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// NotificationRepository provides access to per-user notifications.
// Every mutating method is scoped to the owning user so one user can
// never touch another's notifications.
type NotificationRepository interface {
	Save(notification *model.NotificationModel) error
	FindByUserID(userID string, unreadOnly bool, limit int) ([]*model.NotificationModel, error)
	CountUnread(userID string) (int64, error)
	MarkRead(userID string, notificationID string) error
	MarkAllRead(userID string) error
	Delete(userID string, notificationID string) error
}

// notificationRepository implements NotificationRepository.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Save saves a notification.
func (r *notificationRepository) Save(notification *model.NotificationModel) error {
	return r.db.Save(notification).Error
}

// FindByUserID lists a user's notifications newest first.
func (r *notificationRepository) FindByUserID(userID string, unreadOnly bool, limit int) ([]*model.NotificationModel, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []*model.NotificationModel
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// CountUnread counts a user's unread notifications.
func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one of the user's notifications as read.
func (r *notificationRepository) MarkRead(userID string, notificationID string) error {
	result := r.db.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead marks all the user's notifications as read.
func (r *notificationRepository) MarkAllRead(userID string) error {
	return r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// Delete removes one of the user's notifications.
func (r *notificationRepository) Delete(userID string, notificationID string) error {
	result := r.db.Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&model.NotificationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
