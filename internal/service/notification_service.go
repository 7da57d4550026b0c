package service

import (
	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
)

// NotificationService exposes a user's notification inbox. All
// operations are scoped to the owning user.
type NotificationService interface {
	List(userID string, unreadOnly bool, limit int) ([]*model.NotificationModel, error)
	CountUnread(userID string) (int64, error)
	MarkRead(userID string, notificationID string) error
	MarkAllRead(userID string) error
	Delete(userID string, notificationID string) error
}

// notificationService implements NotificationService.
type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// List lists the user's notifications newest first.
func (s *notificationService) List(userID string, unreadOnly bool, limit int) ([]*model.NotificationModel, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.FindByUserID(userID, unreadOnly, limit)
}

// CountUnread counts the user's unread notifications.
func (s *notificationService) CountUnread(userID string) (int64, error) {
	return s.repo.CountUnread(userID)
}

// MarkRead marks one notification as read.
func (s *notificationService) MarkRead(userID string, notificationID string) error {
	return s.repo.MarkRead(userID, notificationID)
}

// MarkAllRead marks all the user's notifications as read.
func (s *notificationService) MarkAllRead(userID string) error {
	return s.repo.MarkAllRead(userID)
}

// Delete removes one notification.
func (s *notificationService) Delete(userID string, notificationID string) error {
	return s.repo.Delete(userID, notificationID)
}
