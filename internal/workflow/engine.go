package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/metrics"
	"github.com/opencampus/doctrack/internal/model"
)

// PasscodeVerifier checks a plaintext passcode against the encrypted
// passcode stored with a signature.
type PasscodeVerifier func(encryptedPasscode, passcode string) (bool, error)

// Notifier pushes a persisted notification to the recipient's live
// connections. Push is best-effort; failures never surface here.
type Notifier interface {
	Push(userID string, payload []byte)
}

// Engine validates and applies state transitions on documents. Every
// transition runs as one transaction: the guarded document update and
// exactly one history row commit together or not at all. Notification
// rows are enqueued in the same transaction but their failure is
// logged and swallowed; live push happens only after commit.
type Engine struct {
	db       *gorm.DB
	routes   RouteTable
	verify   PasscodeVerifier
	notifier Notifier
	logger   *logrus.Logger
}

// NewEngine creates a workflow engine. The route table is validated up
// front; a misconfigured table is a startup error, not a request error.
func NewEngine(db *gorm.DB, routes RouteTable, verify PasscodeVerifier, notifier Notifier, logger *logrus.Logger) (*Engine, error) {
	if routes == nil {
		routes = DefaultRouteTable()
	}
	if err := routes.Validate(); err != nil {
		return nil, fmt.Errorf("invalid route table: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		db:       db,
		routes:   routes,
		verify:   verify,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// Routes returns the configured route table.
func (e *Engine) Routes() RouteTable {
	return e.routes
}

// SubmitRequest carries a new document submission.
type SubmitRequest struct {
	Title         string   `json:"title" binding:"required"`
	CategoryID    string   `json:"category_id" binding:"required"`
	Priority      string   `json:"priority"`
	Attachments   []string `json:"attachments"`
	Assignatories []string `json:"assignatories" binding:"required"` // reviewers at the origin stage
}

// ForwardRequest advances a document to the next stage of its route.
type ForwardRequest struct {
	Assignatories []string `json:"assignatories" binding:"required"` // reviewers at the next stage
	Note          string   `json:"note"`
}

// RejectRequest terminates a document with a classified reason.
type RejectRequest struct {
	Reason RejectionReason `json:"reason" binding:"required"`
	Detail string          `json:"detail"`
}

var passcodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// Submit creates a document at (PENDING, origin stage), seeds the
// origin assignatory set and appends the SUBMITTED ledger entry.
func (e *Engine) Submit(ctx context.Context, actor Actor, req *SubmitRequest) (*model.DocumentModel, error) {
	if actor.ID == "" {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, Validation("title is required")
	}
	if len(req.Assignatories) == 0 {
		return nil, Validation("at least one assignatory is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, Validation(fmt.Sprintf("unknown priority %q", req.Priority))
	}

	var doc *model.DocumentModel
	var pending []*model.NotificationModel

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.DocumentCategoryModel
		if err := tx.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Validation(fmt.Sprintf("unknown category %q", req.CategoryID))
			}
			return fmt.Errorf("failed to load category: %w", err)
		}

		route, err := e.routes.Resolve(category.Kind)
		if err != nil {
			return fmt.Errorf("failed to resolve route: %w", err)
		}

		refID, err := nextReferenceID(tx, time.Now())
		if err != nil {
			return err
		}

		attachments, err := json.Marshal(req.Attachments)
		if err != nil {
			return fmt.Errorf("failed to encode attachments: %w", err)
		}

		now := time.Now()
		doc = &model.DocumentModel{
			ID:            uuid.New().String(),
			ReferenceID:   refID,
			Title:         strings.TrimSpace(req.Title),
			CategoryID:    category.ID,
			Priority:      priority,
			Status:        string(StatusPending),
			Stage:         string(route.Origin()),
			SubmittedByID: actor.ID,
			Attachments:   attachments,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}

		if err := e.addAssignatories(tx, doc.ID, route.Origin(), req.Assignatories); err != nil {
			return err
		}

		if err := e.appendHistory(tx, doc.ID, ActionSubmitted, route.Origin(), StatusPending, actor.ID,
			fmt.Sprintf("Document %s submitted", refID), ""); err != nil {
			return err
		}

		for _, userID := range dedupe(req.Assignatories) {
			if userID == actor.ID {
				continue
			}
			pending = append(pending, e.enqueue(tx, userID, model.NotificationDocumentSubmitted,
				fmt.Sprintf("New document: %s", doc.Title),
				fmt.Sprintf("Document %s awaits your review at the %s stage.", refID, route.Origin()),
				doc))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(ActionSubmitted))
	e.push(pending)
	return doc, nil
}

// Forward advances (PENDING, S) to (PENDING, next(S)) and seeds the
// next stage's assignatory set.
func (e *Engine) Forward(ctx context.Context, actor Actor, documentID string, req *ForwardRequest) (*model.DocumentModel, error) {
	if len(req.Assignatories) == 0 {
		return nil, Validation("at least one assignatory for the next stage is required")
	}

	var doc *model.DocumentModel
	var pending []*model.NotificationModel

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var route Route
		var err error
		doc, route, err = e.authorize(tx, actor, documentID)
		if err != nil {
			return err
		}

		from := Stage(doc.Stage)
		next, ok := route.Next(from)
		if !ok {
			return Validation(fmt.Sprintf("document is already at the final stage %s of its route", from))
		}

		if err := e.applyGuarded(tx, doc, map[string]interface{}{
			"stage":      string(next),
			"updated_at": time.Now(),
		}); err != nil {
			return err
		}

		if err := e.addAssignatories(tx, doc.ID, next, req.Assignatories); err != nil {
			return err
		}

		if err := e.appendHistory(tx, doc.ID, ActionForwarded, from, StatusPending, actor.ID,
			fmt.Sprintf("Forwarded from %s to %s", from, next), req.Note); err != nil {
			return err
		}

		for _, userID := range dedupe(req.Assignatories) {
			pending = append(pending, e.enqueue(tx, userID, model.NotificationDocumentForwarded,
				fmt.Sprintf("Document forwarded: %s", doc.Title),
				fmt.Sprintf("Document %s awaits your review at the %s stage.", doc.ReferenceID, next),
				doc))
		}
		if doc.SubmittedByID != actor.ID {
			pending = append(pending, e.enqueue(tx, doc.SubmittedByID, model.NotificationDocumentForwarded,
				fmt.Sprintf("Document forwarded: %s", doc.Title),
				fmt.Sprintf("Your document %s moved to the %s stage.", doc.ReferenceID, next),
				doc))
		}

		doc.Stage = string(next)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(ActionForwarded))
	e.push(pending)
	return doc, nil
}

// Approve moves (PENDING, S) to (APPROVED, S). Only the terminal
// approval authority of the document's route may approve.
func (e *Engine) Approve(ctx context.Context, actor Actor, documentID string, note string) (*model.DocumentModel, error) {
	var doc *model.DocumentModel
	var pending []*model.NotificationModel

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var route Route
		var err error
		doc, route, err = e.authorize(tx, actor, documentID)
		if err != nil {
			return err
		}

		stage := Stage(doc.Stage)
		if stage != route.Terminal {
			return fmt.Errorf("%w: approval authority rests with the %s stage", ErrForbidden, route.Terminal)
		}

		if err := e.applyGuarded(tx, doc, map[string]interface{}{
			"status":     string(StatusApproved),
			"updated_at": time.Now(),
		}); err != nil {
			return err
		}

		if err := e.appendHistory(tx, doc.ID, ActionApproved, stage, StatusApproved, actor.ID,
			fmt.Sprintf("Approved at the %s stage", stage), note); err != nil {
			return err
		}

		pending = append(pending, e.enqueue(tx, doc.SubmittedByID, model.NotificationDocumentApproved,
			fmt.Sprintf("Document approved: %s", doc.Title),
			fmt.Sprintf("Your document %s was approved.", doc.ReferenceID),
			doc))

		doc.Status = string(StatusApproved)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(ActionApproved))
	e.push(pending)
	return doc, nil
}

// Reject moves (PENDING, S) to (REJECTED, S). A classified reason is
// required and persisted verbatim.
func (e *Engine) Reject(ctx context.Context, actor Actor, documentID string, req *RejectRequest) (*model.DocumentModel, error) {
	if req.Reason == "" {
		return nil, Validation("rejection reason is required")
	}
	if !req.Reason.Valid() {
		return nil, Validation(fmt.Sprintf("unknown rejection reason %q", req.Reason))
	}

	var doc *model.DocumentModel
	var pending []*model.NotificationModel

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		doc, _, err = e.authorize(tx, actor, documentID)
		if err != nil {
			return err
		}

		stage := Stage(doc.Stage)
		reason := string(req.Reason)
		if err := e.applyGuarded(tx, doc, map[string]interface{}{
			"status":           string(StatusRejected),
			"rejection_reason": reason,
			"rejection_detail": req.Detail,
			"updated_at":       time.Now(),
		}); err != nil {
			return err
		}

		if err := e.appendHistory(tx, doc.ID, ActionRejected, stage, StatusRejected, actor.ID,
			fmt.Sprintf("Rejected at the %s stage: %s", stage, reason), req.Detail); err != nil {
			return err
		}

		pending = append(pending, e.enqueue(tx, doc.SubmittedByID, model.NotificationDocumentRejected,
			fmt.Sprintf("Document rejected: %s", doc.Title),
			fmt.Sprintf("Your document %s was rejected: %s.", doc.ReferenceID, reason),
			doc))

		doc.Status = string(StatusRejected)
		doc.RejectionReason = &reason
		doc.RejectionDetail = req.Detail
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(ActionRejected))
	e.push(pending)
	return doc, nil
}

// Return sends (PENDING, S) back to (PENDING, origin) without marking
// the document terminally rejected.
func (e *Engine) Return(ctx context.Context, actor Actor, documentID string, note string) (*model.DocumentModel, error) {
	var doc *model.DocumentModel
	var pending []*model.NotificationModel

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var route Route
		var err error
		doc, route, err = e.authorize(tx, actor, documentID)
		if err != nil {
			return err
		}

		from := Stage(doc.Stage)
		origin := route.Origin()
		if from == origin {
			return Validation("document is already at its origin stage")
		}

		if err := e.applyGuarded(tx, doc, map[string]interface{}{
			"stage":      string(origin),
			"updated_at": time.Now(),
		}); err != nil {
			return err
		}

		if err := e.appendHistory(tx, doc.ID, ActionReturned, from, StatusPending, actor.ID,
			fmt.Sprintf("Returned from %s for revision", from), note); err != nil {
			return err
		}

		pending = append(pending, e.enqueue(tx, doc.SubmittedByID, model.NotificationDocumentReturned,
			fmt.Sprintf("Document returned: %s", doc.Title),
			fmt.Sprintf("Your document %s was returned for revision.", doc.ReferenceID),
			doc))

		doc.Stage = string(origin)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(ActionReturned))
	e.push(pending)
	return doc, nil
}

// Comment appends a comment row and a COMMENTED ledger entry without
// changing (status, stage). The submitter and any current or past
// assignatory may comment, at any point of the lifecycle.
func (e *Engine) Comment(ctx context.Context, actor Actor, documentID string, body string) (*model.DocumentCommentModel, error) {
	if actor.ID == "" {
		return nil, ErrUnauthorized
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, Validation("comment cannot be empty")
	}

	var comment *model.DocumentCommentModel
	var pending []*model.NotificationModel

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := e.loadDocument(tx, documentID)
		if err != nil {
			return err
		}

		capability := CapabilityFor(actor, doc.SubmittedByID)
		ever, err := e.everAssignatory(tx, doc.ID, actor.ID)
		if err != nil {
			return err
		}
		if !capability.CanComment(ever) {
			return ErrForbidden
		}

		comment = &model.DocumentCommentModel{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			AuthorID:   actor.ID,
			Body:       body,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		if err := e.appendHistory(tx, doc.ID, ActionCommented, Stage(doc.Stage), Status(doc.Status), actor.ID,
			"Comment added", body); err != nil {
			return err
		}

		if doc.SubmittedByID != actor.ID {
			pending = append(pending, e.enqueue(tx, doc.SubmittedByID, model.NotificationCommentAdded,
				fmt.Sprintf("New comment on %s", doc.Title),
				fmt.Sprintf("A comment was added to your document %s.", doc.ReferenceID),
				doc))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(ActionCommented))
	e.push(pending)
	return comment, nil
}

// AttachSignature verifies the actor's passcode against their enrolled
// signature and appends a SIGNATURE_ATTACHED ledger entry. It does not
// change (status, stage); it typically precedes Approve or Forward.
func (e *Engine) AttachSignature(ctx context.Context, actor Actor, documentID string, passcode string) error {
	if !passcodePattern.MatchString(passcode) {
		return Validation("passcode must be exactly 6 digits")
	}
	if e.verify == nil {
		return fmt.Errorf("no passcode verifier configured")
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, _, err := e.authorize(tx, actor, documentID)
		if err != nil {
			return err
		}

		var sig model.SignatureModel
		if err := tx.Where("user_id = ?", actor.ID).First(&sig).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Validation("no signature enrolled for this user")
			}
			return fmt.Errorf("failed to load signature: %w", err)
		}

		ok, err := e.verify(sig.EncryptedPasscode, passcode)
		if err != nil {
			return fmt.Errorf("passcode verification failed: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: passcode verification failed", ErrForbidden)
		}

		return e.appendHistory(tx, doc.ID, ActionSignatureAttached, Stage(doc.Stage), Status(doc.Status), actor.ID,
			fmt.Sprintf("Signature attached at the %s stage", doc.Stage), "")
	})
	if err != nil {
		return err
	}

	metrics.RecordTransition(string(ActionSignatureAttached))
	return nil
}

// Archive soft-flags a terminal document. Reversible via Restore.
func (e *Engine) Archive(ctx context.Context, actor Actor, documentID string) error {
	return e.setArchived(ctx, actor, documentID, true)
}

// Restore clears the archive flag of a terminal document.
func (e *Engine) Restore(ctx context.Context, actor Actor, documentID string) error {
	return e.setArchived(ctx, actor, documentID, false)
}

func (e *Engine) setArchived(ctx context.Context, actor Actor, documentID string, archived bool) error {
	if actor.ID == "" {
		return ErrUnauthorized
	}
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := e.loadDocument(tx, documentID)
		if err != nil {
			return err
		}
		if !actor.Role.Admin() && actor.ID != doc.SubmittedByID {
			return ErrForbidden
		}
		if !Status(doc.Status).Terminal() {
			return Validation("only approved or rejected documents can be archived")
		}
		return tx.Model(&model.DocumentModel{}).
			Where("id = ?", doc.ID).
			Updates(map[string]interface{}{"is_archived": archived, "updated_at": time.Now()}).Error
	})
}

// CanAct reports whether the actor could apply a state-changing
// transition to the document right now. Exposed for the API layer and
// dashboards; the engine re-checks inside every transaction.
func (e *Engine) CanAct(ctx context.Context, actor Actor, documentID string) (bool, error) {
	var can bool
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := e.loadDocument(tx, documentID)
		if err != nil {
			return err
		}
		if Status(doc.Status).Terminal() {
			return nil
		}
		member, err := e.isAssignatory(tx, doc.ID, Stage(doc.Stage), actor.ID)
		if err != nil {
			return err
		}
		can = CapabilityFor(actor, doc.SubmittedByID).CanAct(member)
		return nil
	})
	return can, err
}

// CanDiscuss reports whether the actor may read or add comments on the
// document: the submitter, an admin, or anyone who has ever been an
// assignatory at any stage.
func (e *Engine) CanDiscuss(ctx context.Context, actor Actor, documentID string) (bool, error) {
	if actor.ID == "" {
		return false, ErrUnauthorized
	}
	tx := e.db.WithContext(ctx)
	doc, err := e.loadDocument(tx, documentID)
	if err != nil {
		return false, err
	}
	ever, err := e.everAssignatory(tx, doc.ID, actor.ID)
	if err != nil {
		return false, err
	}
	return CapabilityFor(actor, doc.SubmittedByID).CanComment(ever), nil
}

// authorize loads the document and applies the transition gate: actor
// present, document pre-terminal, and the actor's capability granting
// write access for the current assignatory membership.
func (e *Engine) authorize(tx *gorm.DB, actor Actor, documentID string) (*model.DocumentModel, Route, error) {
	if actor.ID == "" {
		return nil, Route{}, ErrUnauthorized
	}

	doc, err := e.loadDocument(tx, documentID)
	if err != nil {
		return nil, Route{}, err
	}
	if Status(doc.Status).Terminal() {
		return nil, Route{}, ErrTerminal
	}

	kind := model.CategoryKindAcademic
	if doc.Category != nil {
		kind = doc.Category.Kind
	}
	route, err := e.routes.Resolve(kind)
	if err != nil {
		return nil, Route{}, fmt.Errorf("failed to resolve route: %w", err)
	}

	member, err := e.isAssignatory(tx, doc.ID, Stage(doc.Stage), actor.ID)
	if err != nil {
		return nil, Route{}, err
	}
	if !CapabilityFor(actor, doc.SubmittedByID).CanAct(member) {
		return nil, Route{}, ErrForbidden
	}
	return doc, route, nil
}

func (e *Engine) loadDocument(tx *gorm.DB, id string) (*model.DocumentModel, error) {
	var doc model.DocumentModel
	if err := tx.Preload("Category").Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, nil
}

// applyGuarded updates the document only if its (status, stage) pair
// is still what this transaction read. Zero rows affected means a
// concurrent transition won and the caller saw stale state.
func (e *Engine) applyGuarded(tx *gorm.DB, doc *model.DocumentModel, updates map[string]interface{}) error {
	res := tx.Model(&model.DocumentModel{}).
		Where("id = ? AND status = ? AND stage = ?", doc.ID, doc.Status, doc.Stage).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// appendHistory writes exactly one ledger row. Stage is the stage the
// performer acted at (pre-transition); status is the post-transition
// snapshot.
func (e *Engine) appendHistory(tx *gorm.DB, documentID string, action Action, stage Stage, status Status, performerID, summary, details string) error {
	entry := &model.DocumentHistoryModel{
		ID:            uuid.New().String(),
		DocumentID:    documentID,
		Action:        string(action),
		Stage:         string(stage),
		Status:        string(status),
		PerformedByID: performerID,
		Summary:       summary,
		Details:       details,
		CreatedAt:     time.Now(),
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (e *Engine) addAssignatories(tx *gorm.DB, documentID string, stage Stage, userIDs []string) error {
	for _, userID := range dedupe(userIDs) {
		var count int64
		if err := tx.Model(&model.AssignatoryModel{}).
			Where("document_id = ? AND user_id = ? AND stage = ?", documentID, userID, stage).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check assignatory: %w", err)
		}
		if count > 0 {
			continue
		}
		row := &model.AssignatoryModel{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			UserID:     userID,
			Stage:      string(stage),
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to create assignatory: %w", err)
		}
	}
	return nil
}

func (e *Engine) isAssignatory(tx *gorm.DB, documentID string, stage Stage, userID string) (bool, error) {
	var count int64
	err := tx.Model(&model.AssignatoryModel{}).
		Where("document_id = ? AND stage = ? AND user_id = ?", documentID, stage, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query assignatories: %w", err)
	}
	return count > 0, nil
}

func (e *Engine) everAssignatory(tx *gorm.DB, documentID string, userID string) (bool, error) {
	var count int64
	err := tx.Model(&model.AssignatoryModel{}).
		Where("document_id = ? AND user_id = ?", documentID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to query assignatories: %w", err)
	}
	return count > 0, nil
}

// enqueue persists a notification row inside the transition
// transaction. A failed insert is logged and swallowed: notifications
// are not part of the authoritative workflow state.
func (e *Engine) enqueue(tx *gorm.DB, userID, typ, title, message string, doc *model.DocumentModel) *model.NotificationModel {
	meta, _ := json.Marshal(map[string]string{
		"document_id":  doc.ID,
		"reference_id": doc.ReferenceID,
	})
	n := &model.NotificationModel{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Link:      "/documents/" + doc.ID,
		Metadata:  meta,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := tx.Create(n).Error; err != nil {
		e.logger.WithFields(logrus.Fields{
			"user_id":     userID,
			"document_id": doc.ID,
			"type":        typ,
		}).WithError(err).Warn("failed to enqueue notification")
		return nil
	}
	return n
}

// push counts and delivers enqueued notifications after the
// transaction committed, so a rollback never reaches the counters or
// open connections.
func (e *Engine) push(pending []*model.NotificationModel) {
	for _, n := range pending {
		if n == nil {
			continue
		}
		metrics.RecordNotificationDispatched(n.Type)
		if e.notifier == nil {
			continue
		}
		payload, err := json.Marshal(n)
		if err != nil {
			continue
		}
		e.notifier.Push(n.UserID, payload)
	}
}

func nextReferenceID(tx *gorm.DB, now time.Time) (string, error) {
	prefix := fmt.Sprintf("DOC-%d-", now.Year())
	var count int64
	if err := tx.Model(&model.DocumentModel{}).
		Where("reference_id LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count documents: %w", err)
	}
	return fmt.Sprintf("%s%06d", prefix, count+1), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
