package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
)

// AuditEntry describes one mutating operation for the audit trail.
type AuditEntry struct {
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	RequestID    string
	IP           string
	UserAgent    string
	Details      interface{}
}

// AuditService records and queries the audit trail. Recording is
// best-effort: a failed audit write never fails the operation that
// triggered it.
type AuditService interface {
	Record(entry AuditEntry)
	FindByResource(resourceType string, resourceID string) ([]*model.SystemLogModel, error)
	FindByFilter(filter *repository.SystemLogFilter) ([]*model.SystemLogModel, int64, error)
}

// auditService implements AuditService.
type auditService struct {
	repo   repository.SystemLogRepository
	logger *logrus.Logger
}

// NewAuditService creates an audit service.
func NewAuditService(repo repository.SystemLogRepository, logger *logrus.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

// Record writes one audit row.
func (s *auditService) Record(entry AuditEntry) {
	var details []byte
	if entry.Details != nil {
		details, _ = json.Marshal(entry.Details)
	}

	row := &model.SystemLogModel{
		ID:           uuid.New().String(),
		UserID:       entry.ActorID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		RequestID:    entry.RequestID,
		IP:           entry.IP,
		UserAgent:    entry.UserAgent,
		Details:      details,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Save(row); err != nil {
		s.logger.WithFields(logrus.Fields{
			"action":      entry.Action,
			"resource_id": entry.ResourceID,
		}).WithError(err).Error("failed to record audit entry")
	}
}

// FindByResource lists audit entries for a resource.
func (s *auditService) FindByResource(resourceType string, resourceID string) ([]*model.SystemLogModel, error) {
	return s.repo.FindByResource(resourceType, resourceID)
}

// FindByFilter lists audit entries matching the filter.
func (s *auditService) FindByFilter(filter *repository.SystemLogFilter) ([]*model.SystemLogModel, int64, error) {
	return s.repo.FindByFilter(filter)
}
