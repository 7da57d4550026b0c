package service

import (
	"context"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/opencampus/doctrack/internal/workflow"
)

// DocumentService coordinates workflow transitions and read queries.
// Transitions delegate to the workflow engine and append an audit
// entry on success.
type DocumentService interface {
	Submit(ctx context.Context, actor workflow.Actor, req *workflow.SubmitRequest, meta AuditMeta) (*model.DocumentModel, error)
	Forward(ctx context.Context, actor workflow.Actor, documentID string, req *workflow.ForwardRequest, meta AuditMeta) (*model.DocumentModel, error)
	Approve(ctx context.Context, actor workflow.Actor, documentID string, note string, meta AuditMeta) (*model.DocumentModel, error)
	Reject(ctx context.Context, actor workflow.Actor, documentID string, req *workflow.RejectRequest, meta AuditMeta) (*model.DocumentModel, error)
	Return(ctx context.Context, actor workflow.Actor, documentID string, note string, meta AuditMeta) (*model.DocumentModel, error)
	Comment(ctx context.Context, actor workflow.Actor, documentID string, body string, meta AuditMeta) (*model.DocumentCommentModel, error)
	AttachSignature(ctx context.Context, actor workflow.Actor, documentID string, passcode string, meta AuditMeta) error
	Archive(ctx context.Context, actor workflow.Actor, documentID string, meta AuditMeta) error
	Restore(ctx context.Context, actor workflow.Actor, documentID string, meta AuditMeta) error

	Get(actor workflow.Actor, documentID string) (*model.DocumentModel, error)
	List(filter *repository.DocumentFilter) ([]*model.DocumentModel, int64, error)
	History(documentID string) ([]*model.DocumentHistoryModel, error)
	Comments(ctx context.Context, actor workflow.Actor, documentID string) ([]*model.DocumentCommentModel, error)
	AssignedTo(userID string, stage string) ([]*model.DocumentModel, error)
	CanAct(ctx context.Context, actor workflow.Actor, documentID string) (bool, error)
}

// AuditMeta carries request attribution into the audit trail.
type AuditMeta struct {
	RequestID string
	IP        string
	UserAgent string
}

const resourceDocument = "document"

// documentService implements DocumentService.
type documentService struct {
	engine   *workflow.Engine
	docs     repository.DocumentRepository
	history  repository.HistoryRepository
	comments repository.CommentRepository
	audit    AuditService
}

// NewDocumentService creates a document service.
func NewDocumentService(
	engine *workflow.Engine,
	docs repository.DocumentRepository,
	history repository.HistoryRepository,
	comments repository.CommentRepository,
	audit AuditService,
) DocumentService {
	return &documentService{
		engine:   engine,
		docs:     docs,
		history:  history,
		comments: comments,
		audit:    audit,
	}
}

// Submit creates a document at the origin stage.
func (s *documentService) Submit(ctx context.Context, actor workflow.Actor, req *workflow.SubmitRequest, meta AuditMeta) (*model.DocumentModel, error) {
	doc, err := s.engine.Submit(ctx, actor, req)
	if err != nil {
		return nil, err
	}
	s.record(actor, "document.submit", doc.ID, meta, map[string]string{"title": doc.Title})
	return doc, nil
}

// Forward advances a document to the next stage.
func (s *documentService) Forward(ctx context.Context, actor workflow.Actor, documentID string, req *workflow.ForwardRequest, meta AuditMeta) (*model.DocumentModel, error) {
	doc, err := s.engine.Forward(ctx, actor, documentID, req)
	if err != nil {
		return nil, err
	}
	s.record(actor, "document.forward", documentID, meta, map[string]string{"stage": doc.Stage})
	return doc, nil
}

// Approve finalizes a document at its terminal authority stage.
func (s *documentService) Approve(ctx context.Context, actor workflow.Actor, documentID string, note string, meta AuditMeta) (*model.DocumentModel, error) {
	doc, err := s.engine.Approve(ctx, actor, documentID, note)
	if err != nil {
		return nil, err
	}
	s.record(actor, "document.approve", documentID, meta, nil)
	return doc, nil
}

// Reject finalizes a document with a rejection reason.
func (s *documentService) Reject(ctx context.Context, actor workflow.Actor, documentID string, req *workflow.RejectRequest, meta AuditMeta) (*model.DocumentModel, error) {
	doc, err := s.engine.Reject(ctx, actor, documentID, req)
	if err != nil {
		return nil, err
	}
	s.record(actor, "document.reject", documentID, meta, map[string]string{"reason": string(req.Reason)})
	return doc, nil
}

// Return sends a document back to its origin stage for revision.
func (s *documentService) Return(ctx context.Context, actor workflow.Actor, documentID string, note string, meta AuditMeta) (*model.DocumentModel, error) {
	doc, err := s.engine.Return(ctx, actor, documentID, note)
	if err != nil {
		return nil, err
	}
	s.record(actor, "document.return", documentID, meta, nil)
	return doc, nil
}

// Comment adds a remark to a document.
func (s *documentService) Comment(ctx context.Context, actor workflow.Actor, documentID string, body string, meta AuditMeta) (*model.DocumentCommentModel, error) {
	comment, err := s.engine.Comment(ctx, actor, documentID, body)
	if err != nil {
		return nil, err
	}
	s.record(actor, "document.comment", documentID, meta, nil)
	return comment, nil
}

// AttachSignature affixes the actor's signature after passcode
// verification.
func (s *documentService) AttachSignature(ctx context.Context, actor workflow.Actor, documentID string, passcode string, meta AuditMeta) error {
	if err := s.engine.AttachSignature(ctx, actor, documentID, passcode); err != nil {
		return err
	}
	s.record(actor, "document.sign", documentID, meta, nil)
	return nil
}

// Archive soft-flags a finalized document.
func (s *documentService) Archive(ctx context.Context, actor workflow.Actor, documentID string, meta AuditMeta) error {
	if err := s.engine.Archive(ctx, actor, documentID); err != nil {
		return err
	}
	s.record(actor, "document.archive", documentID, meta, nil)
	return nil
}

// Restore reverses archiving.
func (s *documentService) Restore(ctx context.Context, actor workflow.Actor, documentID string, meta AuditMeta) error {
	if err := s.engine.Restore(ctx, actor, documentID); err != nil {
		return err
	}
	s.record(actor, "document.restore", documentID, meta, nil)
	return nil
}

// Get loads a document by ID.
func (s *documentService) Get(actor workflow.Actor, documentID string) (*model.DocumentModel, error) {
	return s.docs.FindByID(documentID)
}

// List queries documents by filter.
func (s *documentService) List(filter *repository.DocumentFilter) ([]*model.DocumentModel, int64, error) {
	return s.docs.FindByFilter(filter)
}

// History lists a document's ledger entries oldest first.
func (s *documentService) History(documentID string) ([]*model.DocumentHistoryModel, error) {
	return s.history.FindByDocumentID(documentID)
}

// Comments lists a document's comments oldest first. Reading the
// thread is gated the same way as writing to it: submitter, admins,
// and current or past assignatories only.
func (s *documentService) Comments(ctx context.Context, actor workflow.Actor, documentID string) ([]*model.DocumentCommentModel, error) {
	ok, err := s.engine.CanDiscuss(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, workflow.ErrForbidden
	}
	return s.comments.FindByDocumentID(documentID)
}

// AssignedTo lists documents waiting on a user.
func (s *documentService) AssignedTo(userID string, stage string) ([]*model.DocumentModel, error) {
	return s.docs.FindAssignedTo(userID, stage)
}

// CanAct reports whether the actor may transition the document now.
func (s *documentService) CanAct(ctx context.Context, actor workflow.Actor, documentID string) (bool, error) {
	return s.engine.CanAct(ctx, actor, documentID)
}

func (s *documentService) record(actor workflow.Actor, action string, documentID string, meta AuditMeta, details interface{}) {
	s.audit.Record(AuditEntry{
		ActorID:      actor.ID,
		Action:       action,
		ResourceType: resourceDocument,
		ResourceID:   documentID,
		RequestID:    meta.RequestID,
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		Details:      details,
	})
}
