package workflow_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/opencampus/doctrack/internal/metrics"
	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/workflow"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingNotifier captures real-time pushes so tests can assert on
// what was delivered after commit.
type recordingNotifier struct {
	mu     sync.Mutex
	pushes map[string][][]byte
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{pushes: make(map[string][][]byte)}
}

func (n *recordingNotifier) Push(userID string, payload []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes[userID] = append(n.pushes[userID], payload)
}

func (n *recordingNotifier) countFor(userID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pushes[userID])
}

// setupEngine creates an in-memory database, seeds one academic and one
// administrative category and wires an engine whose passcode verifier
// treats the stored value as the plaintext passcode.
func setupEngine(t *testing.T) (*workflow.Engine, *gorm.DB, *recordingNotifier) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.DesignationModel{},
		&model.DocumentCategoryModel{},
		&model.DocumentModel{},
		&model.AssignatoryModel{},
		&model.DocumentHistoryModel{},
		&model.DocumentCommentModel{},
		&model.NotificationModel{},
		&model.SignatureModel{},
	)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.DocumentCategoryModel{
		ID: "cat-academic", Name: "Syllabus", Kind: model.CategoryKindAcademic,
	}).Error)
	require.NoError(t, db.Create(&model.DocumentCategoryModel{
		ID: "cat-admin", Name: "Budget Request", Kind: model.CategoryKindAdministrative,
	}).Error)

	verify := func(encrypted, passcode string) (bool, error) {
		return encrypted == passcode, nil
	}

	notifier := newRecordingNotifier()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	engine, err := workflow.NewEngine(db, nil, verify, notifier, logger)
	require.NoError(t, err)
	return engine, db, notifier
}

func submitter() workflow.Actor {
	return workflow.Actor{ID: "user-faculty", Role: workflow.RoleInstructor}
}

// submitDoc creates a pending document with one origin assignatory.
func submitDoc(t *testing.T, engine *workflow.Engine, assignatories ...string) *model.DocumentModel {
	t.Helper()
	if len(assignatories) == 0 {
		assignatories = []string{"user-instructor"}
	}
	doc, err := engine.Submit(context.Background(), submitter(), &workflow.SubmitRequest{
		Title:         "BSCS Syllabus Revision",
		CategoryID:    "cat-academic",
		Assignatories: assignatories,
	})
	require.NoError(t, err)
	return doc
}

func historyFor(t *testing.T, db *gorm.DB, documentID string) []model.DocumentHistoryModel {
	t.Helper()
	var rows []model.DocumentHistoryModel
	require.NoError(t, db.Where("document_id = ?", documentID).Order("created_at ASC").Find(&rows).Error)
	return rows
}

func TestSubmitCreatesPendingAtOrigin(t *testing.T) {
	engine, db, notifier := setupEngine(t)

	doc := submitDoc(t, engine, "user-instructor", "user-co-instructor")

	assert.Equal(t, string(workflow.StatusPending), doc.Status)
	assert.Equal(t, string(workflow.StageInstructor), doc.Stage)
	assert.True(t, strings.HasPrefix(doc.ReferenceID, "DOC-"), "reference ID should carry the DOC prefix")
	assert.Equal(t, "Medium", doc.Priority, "priority should default to Medium")

	rows := historyFor(t, db, doc.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, string(workflow.ActionSubmitted), rows[0].Action)
	assert.Equal(t, string(workflow.StageInstructor), rows[0].Stage)
	assert.Equal(t, submitter().ID, rows[0].PerformedByID)

	var members []model.AssignatoryModel
	require.NoError(t, db.Where("document_id = ?", doc.ID).Find(&members).Error)
	assert.Len(t, members, 2)

	var notifs []model.NotificationModel
	require.NoError(t, db.Where("user_id = ?", "user-instructor").Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotificationDocumentSubmitted, notifs[0].Type)
	assert.Equal(t, 1, notifier.countFor("user-instructor"))
}

func TestSubmitValidation(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Submit(ctx, workflow.Actor{}, &workflow.SubmitRequest{
		Title: "x", CategoryID: "cat-academic", Assignatories: []string{"u"},
	})
	assert.ErrorIs(t, err, workflow.ErrUnauthorized)

	_, err = engine.Submit(ctx, submitter(), &workflow.SubmitRequest{
		Title: "   ", CategoryID: "cat-academic", Assignatories: []string{"u"},
	})
	assert.True(t, workflow.IsValidation(err), "blank title should be rejected")

	_, err = engine.Submit(ctx, submitter(), &workflow.SubmitRequest{
		Title: "x", CategoryID: "cat-academic",
	})
	assert.True(t, workflow.IsValidation(err), "empty assignatory list should be rejected")

	_, err = engine.Submit(ctx, submitter(), &workflow.SubmitRequest{
		Title: "x", CategoryID: "cat-academic", Priority: "Urgent", Assignatories: []string{"u"},
	})
	assert.True(t, workflow.IsValidation(err), "unknown priority should be rejected")

	_, err = engine.Submit(ctx, submitter(), &workflow.SubmitRequest{
		Title: "x", CategoryID: "no-such-category", Assignatories: []string{"u"},
	})
	assert.True(t, workflow.IsValidation(err), "unknown category should be rejected")
}

func TestForwardAdvancesStage(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	forwarded, err := engine.Forward(ctx, instructor, doc.ID, &workflow.ForwardRequest{
		Assignatories: []string{"user-dean"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StageDean), forwarded.Stage)
	assert.Equal(t, string(workflow.StatusPending), forwarded.Status)

	rows := historyFor(t, db, doc.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, string(workflow.ActionForwarded), rows[1].Action)
	// the ledger records the stage the performer acted at
	assert.Equal(t, string(workflow.StageInstructor), rows[1].Stage)

	var members []model.AssignatoryModel
	require.NoError(t, db.Where("document_id = ? AND stage = ?", doc.ID, workflow.StageDean).Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, "user-dean", members[0].UserID)
}

func TestForwardRequiresStageMembership(t *testing.T) {
	engine, _, _ := setupEngine(t)
	doc := submitDoc(t, engine)

	outsider := workflow.Actor{ID: "user-outsider", Role: workflow.RoleDean}
	_, err := engine.Forward(context.Background(), outsider, doc.ID, &workflow.ForwardRequest{
		Assignatories: []string{"user-dean"},
	})
	assert.ErrorIs(t, err, workflow.ErrForbidden)
}

func TestForwardAtFinalStage(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	admin := workflow.Actor{ID: "user-admin", Role: workflow.RoleSystemAdmin}
	for _, next := range []string{"user-dean", "user-vpaa", "user-president", "user-registrar", "user-archivist"} {
		_, err := engine.Forward(ctx, admin, doc.ID, &workflow.ForwardRequest{Assignatories: []string{next}})
		require.NoError(t, err)
	}

	_, err := engine.Forward(ctx, admin, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-nobody"}})
	assert.True(t, workflow.IsValidation(err), "forwarding past the last stage should be rejected")
}

func TestApproveOnlyAtTerminalStage(t *testing.T) {
	engine, db, notifier := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	admin := workflow.Actor{ID: "user-admin", Role: workflow.RoleHR}
	_, err := engine.Approve(ctx, admin, doc.ID, "")
	assert.ErrorIs(t, err, workflow.ErrForbidden, "approval before the terminal stage must be refused")

	// walk the academic route up to the President
	for _, next := range []string{"user-dean", "user-vpaa", "user-president"} {
		_, err = engine.Forward(ctx, admin, doc.ID, &workflow.ForwardRequest{Assignatories: []string{next}})
		require.NoError(t, err)
	}

	president := workflow.Actor{ID: "user-president", Role: workflow.RolePresident}
	approved, err := engine.Approve(ctx, president, doc.ID, "endorsed")
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusApproved), approved.Status)
	assert.Equal(t, string(workflow.StagePresident), approved.Stage, "approval must not move the stage")

	rows := historyFor(t, db, doc.ID)
	last := rows[len(rows)-1]
	assert.Equal(t, string(workflow.ActionApproved), last.Action)
	assert.Equal(t, string(workflow.StatusApproved), last.Status)

	var notifs []model.NotificationModel
	require.NoError(t, db.Where("user_id = ? AND type = ?", submitter().ID, model.NotificationDocumentApproved).Find(&notifs).Error)
	assert.Len(t, notifs, 1)
	assert.GreaterOrEqual(t, notifier.countFor(submitter().ID), 1)
}

func TestRejectRecordsReasonVerbatim(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err := engine.Reject(ctx, instructor, doc.ID, &workflow.RejectRequest{Reason: "WHIM"})
	assert.True(t, workflow.IsValidation(err), "unknown rejection reason should be refused")

	rejected, err := engine.Reject(ctx, instructor, doc.ID, &workflow.RejectRequest{
		Reason: workflow.ReasonNeedsRevision,
		Detail: "missing course outcomes",
	})
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, string(workflow.ReasonNeedsRevision), *rejected.RejectionReason)
	assert.Equal(t, "missing course outcomes", rejected.RejectionDetail)

	var stored model.DocumentModel
	require.NoError(t, db.Where("id = ?", doc.ID).First(&stored).Error)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, string(workflow.ReasonNeedsRevision), *stored.RejectionReason)
}

func TestReturnResetsToOrigin(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err := engine.Return(ctx, instructor, doc.ID, "already at start")
	assert.True(t, workflow.IsValidation(err), "returning a document already at its origin should be refused")

	_, err = engine.Forward(ctx, instructor, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-dean"}})
	require.NoError(t, err)

	dean := workflow.Actor{ID: "user-dean", Role: workflow.RoleDean}
	returned, err := engine.Return(ctx, dean, doc.ID, "needs department endorsement")
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StageInstructor), returned.Stage)
	assert.Equal(t, string(workflow.StatusPending), returned.Status)

	rows := historyFor(t, db, doc.ID)
	last := rows[len(rows)-1]
	assert.Equal(t, string(workflow.ActionReturned), last.Action)
	assert.Equal(t, string(workflow.StageDean), last.Stage)
}

func TestTerminalBlocksFurtherTransitions(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err := engine.Reject(ctx, instructor, doc.ID, &workflow.RejectRequest{Reason: workflow.ReasonOther})
	require.NoError(t, err)

	_, err = engine.Forward(ctx, instructor, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-dean"}})
	assert.ErrorIs(t, err, workflow.ErrTerminal)
	_, err = engine.Return(ctx, instructor, doc.ID, "")
	assert.ErrorIs(t, err, workflow.ErrTerminal)
	_, err = engine.Reject(ctx, instructor, doc.ID, &workflow.RejectRequest{Reason: workflow.ReasonOther})
	assert.ErrorIs(t, err, workflow.ErrTerminal)
}

func TestSubmitterCannotActOnOwnDocument(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	// the submitter holds an admin role, yet ownership still wins
	adminSubmitter := workflow.Actor{ID: "user-hr", Role: workflow.RoleHR}
	doc, err := engine.Submit(ctx, adminSubmitter, &workflow.SubmitRequest{
		Title:         "HR Policy Update",
		CategoryID:    "cat-admin",
		Assignatories: []string{"user-instructor"},
	})
	require.NoError(t, err)

	_, err = engine.Forward(ctx, adminSubmitter, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-dean"}})
	assert.ErrorIs(t, err, workflow.ErrForbidden)
	_, err = engine.Reject(ctx, adminSubmitter, doc.ID, &workflow.RejectRequest{Reason: workflow.ReasonOther})
	assert.ErrorIs(t, err, workflow.ErrForbidden)

	canAct, err := engine.CanAct(ctx, adminSubmitter, doc.ID)
	require.NoError(t, err)
	assert.False(t, canAct)
}

func TestAdministrativeRouteIncludesVPADA(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()

	doc, err := engine.Submit(ctx, submitter(), &workflow.SubmitRequest{
		Title:         "Gym Repair Budget",
		CategoryID:    "cat-admin",
		Assignatories: []string{"user-instructor"},
	})
	require.NoError(t, err)

	admin := workflow.Actor{ID: "user-admin", Role: workflow.RoleSystemAdmin}
	var stages []string
	for i := 0; i < 2; i++ {
		forwarded, err := engine.Forward(ctx, admin, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-next"}})
		require.NoError(t, err)
		stages = append(stages, forwarded.Stage)
	}
	assert.Equal(t, []string{string(workflow.StageDean), string(workflow.StageVPADA)}, stages)
}

func TestCommentVisibility(t *testing.T) {
	engine, db, notifier := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err := engine.Forward(ctx, instructor, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-dean"}})
	require.NoError(t, err)

	// the submitter may always comment
	comment, err := engine.Comment(ctx, submitter(), doc.ID, "please expedite")
	require.NoError(t, err)
	assert.Equal(t, "please expedite", comment.Body)

	// a past-stage assignatory keeps comment access after forwarding
	_, err = engine.Comment(ctx, instructor, doc.ID, "endorsed from my end")
	require.NoError(t, err)

	outsider := workflow.Actor{ID: "user-outsider", Role: workflow.RoleDean}
	_, err = engine.Comment(ctx, outsider, doc.ID, "drive-by")
	assert.ErrorIs(t, err, workflow.ErrForbidden)

	_, err = engine.Comment(ctx, submitter(), doc.ID, "")
	assert.True(t, workflow.IsValidation(err))

	// the instructor's comment notifies the submitter
	var notifs []model.NotificationModel
	require.NoError(t, db.Where("user_id = ? AND type = ?", submitter().ID, model.NotificationCommentAdded).Find(&notifs).Error)
	assert.Len(t, notifs, 1)
	assert.GreaterOrEqual(t, notifier.countFor(submitter().ID), 1)
}

func TestCanDiscuss(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err := engine.Forward(ctx, instructor, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-dean"}})
	require.NoError(t, err)

	cases := []struct {
		name  string
		actor workflow.Actor
		want  bool
	}{
		{"submitter", submitter(), true},
		{"past-stage assignatory", instructor, true},
		{"current-stage assignatory", workflow.Actor{ID: "user-dean", Role: workflow.RoleDean}, true},
		{"admin", workflow.Actor{ID: "user-admin", Role: workflow.RoleSystemAdmin}, true},
		{"outsider", workflow.Actor{ID: "user-outsider", Role: workflow.RoleDean}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			can, err := engine.CanDiscuss(ctx, tc.actor, doc.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, can)
		})
	}

	_, err = engine.CanDiscuss(ctx, workflow.Actor{}, doc.ID)
	assert.ErrorIs(t, err, workflow.ErrUnauthorized)

	_, err = engine.CanDiscuss(ctx, submitter(), "no-such-document")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestCommentAllowedAfterFinalDecision(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err := engine.Reject(ctx, instructor, doc.ID, &workflow.RejectRequest{Reason: workflow.ReasonOther})
	require.NoError(t, err)

	_, err = engine.Comment(ctx, submitter(), doc.ID, "will resubmit next week")
	require.NoError(t, err, "discussion stays open after a final decision")
}

func TestCanAct(t *testing.T) {
	engine, _, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	cases := []struct {
		name  string
		actor workflow.Actor
		want  bool
	}{
		{"stage assignatory", workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}, true},
		{"outsider", workflow.Actor{ID: "user-outsider", Role: workflow.RoleDean}, false},
		{"admin", workflow.Actor{ID: "user-admin", Role: workflow.RoleSystemAdmin}, true},
		{"submitter", submitter(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.CanAct(ctx, tc.actor, doc.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err := engine.Reject(ctx, instructor, doc.ID, &workflow.RejectRequest{Reason: workflow.ReasonOther})
	require.NoError(t, err)

	got, err := engine.CanAct(ctx, instructor, doc.ID)
	require.NoError(t, err)
	assert.False(t, got, "nobody can act on a finalized document")
}

func TestAttachSignature(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}

	err := engine.AttachSignature(ctx, instructor, doc.ID, "12ab56")
	assert.True(t, workflow.IsValidation(err), "passcode must be six digits")

	err = engine.AttachSignature(ctx, instructor, doc.ID, "123456")
	assert.True(t, workflow.IsValidation(err), "actor without an enrolled signature cannot sign")

	// the stub verifier compares the stored value with the passcode
	require.NoError(t, db.Create(&model.SignatureModel{
		ID: "sig-1", UserID: "user-instructor", ImageURI: "file:///sig.png", EncryptedPasscode: "123456",
	}).Error)

	err = engine.AttachSignature(ctx, instructor, doc.ID, "654321")
	assert.ErrorIs(t, err, workflow.ErrForbidden, "wrong passcode must be refused")

	require.NoError(t, engine.AttachSignature(ctx, instructor, doc.ID, "123456"))

	var fresh model.DocumentModel
	require.NoError(t, db.Where("id = ?", doc.ID).First(&fresh).Error)
	assert.Equal(t, string(workflow.StatusPending), fresh.Status, "signing must not change the status")
	assert.Equal(t, string(workflow.StageInstructor), fresh.Stage, "signing must not change the stage")

	rows := historyFor(t, db, doc.ID)
	last := rows[len(rows)-1]
	assert.Equal(t, string(workflow.ActionSignatureAttached), last.Action)
}

// scrapeCounter reads one labelled counter from the metrics endpoint.
// The registry is process-global, so assertions below work on deltas.
func scrapeCounter(t *testing.T, name, label string) float64 {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	prefix := fmt.Sprintf("%s{%s} ", name, label)
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if strings.HasPrefix(line, prefix) {
			value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, prefix)), 64)
			require.NoError(t, err)
			return value
		}
	}
	return 0
}

func TestCountersMoveOnlyOnCommit(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	require.NoError(t, db.Create(&model.SignatureModel{
		ID: "sig-1", UserID: "user-instructor", ImageURI: "file:///sig.png", EncryptedPasscode: "123456",
	}).Error)

	signLabel := fmt.Sprintf("action=%q", workflow.ActionSignatureAttached)
	before := scrapeCounter(t, "workflow_transitions_total", signLabel)

	err := engine.AttachSignature(ctx, instructor, doc.ID, "654321")
	require.ErrorIs(t, err, workflow.ErrForbidden)
	assert.Equal(t, before, scrapeCounter(t, "workflow_transitions_total", signLabel),
		"a refused signature must not count as a transition")

	require.NoError(t, engine.AttachSignature(ctx, instructor, doc.ID, "123456"))
	assert.Equal(t, before+1, scrapeCounter(t, "workflow_transitions_total", signLabel))

	notifyLabel := fmt.Sprintf("type=%q", model.NotificationCommentAdded)
	before = scrapeCounter(t, "notifications_dispatched_total", notifyLabel)

	_, err = engine.Comment(ctx, instructor, doc.ID, "looks good")
	require.NoError(t, err)
	assert.Equal(t, before+1, scrapeCounter(t, "notifications_dispatched_total", notifyLabel))
}

func TestArchiveRequiresFinalDecision(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	err := engine.Archive(ctx, submitter(), doc.ID)
	assert.True(t, workflow.IsValidation(err), "a pending document cannot be archived")

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err = engine.Reject(ctx, instructor, doc.ID, &workflow.RejectRequest{Reason: workflow.ReasonOther})
	require.NoError(t, err)

	err = engine.Archive(ctx, instructor, doc.ID)
	assert.ErrorIs(t, err, workflow.ErrForbidden, "only the submitter or an admin may archive")

	require.NoError(t, engine.Archive(ctx, submitter(), doc.ID))
	var stored model.DocumentModel
	require.NoError(t, db.Where("id = ?", doc.ID).First(&stored).Error)
	assert.True(t, stored.IsArchived)

	require.NoError(t, engine.Restore(ctx, submitter(), doc.ID))
	require.NoError(t, db.Where("id = ?", doc.ID).First(&stored).Error)
	assert.False(t, stored.IsArchived)
}

func TestHistoryMatchesTransitionCount(t *testing.T) {
	engine, db, _ := setupEngine(t)
	ctx := context.Background()
	doc := submitDoc(t, engine)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err := engine.Forward(ctx, instructor, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-dean"}})
	require.NoError(t, err)

	dean := workflow.Actor{ID: "user-dean", Role: workflow.RoleDean}
	_, err = engine.Return(ctx, dean, doc.ID, "")
	require.NoError(t, err)
	_, err = engine.Forward(ctx, instructor, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-dean"}})
	require.NoError(t, err)
	_, err = engine.Reject(ctx, dean, doc.ID, &workflow.RejectRequest{Reason: workflow.ReasonPolicyViolation})
	require.NoError(t, err)

	rows := historyFor(t, db, doc.ID)
	require.Len(t, rows, 5, "one ledger entry per transition, submission included")

	actions := make([]string, len(rows))
	for i, r := range rows {
		actions[i] = r.Action
	}
	assert.Equal(t, []string{
		string(workflow.ActionSubmitted),
		string(workflow.ActionForwarded),
		string(workflow.ActionReturned),
		string(workflow.ActionForwarded),
		string(workflow.ActionRejected),
	}, actions)

	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].CreatedAt.Before(rows[i-1].CreatedAt), "ledger timestamps must not regress")
	}
}

// Full round trip of the everyday rejection story: a faculty member
// submits, the document climbs two stages and the VPAA sends it back
// with a classified reason the submitter can read.
func TestRejectionRoundTrip(t *testing.T) {
	engine, db, notifier := setupEngine(t)
	ctx := context.Background()

	faculty := workflow.Actor{ID: "user-santos", Role: workflow.RoleInstructor}
	doc, err := engine.Submit(ctx, faculty, &workflow.SubmitRequest{
		Title:         "Curriculum Proposal: BS Data Science",
		CategoryID:    "cat-academic",
		Priority:      "High",
		Assignatories: []string{"user-instructor"},
	})
	require.NoError(t, err)

	instructor := workflow.Actor{ID: "user-instructor", Role: workflow.RoleInstructor}
	_, err = engine.Forward(ctx, instructor, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-dean"}, Note: "endorsed"})
	require.NoError(t, err)

	dean := workflow.Actor{ID: "user-dean", Role: workflow.RoleDean}
	_, err = engine.Forward(ctx, dean, doc.ID, &workflow.ForwardRequest{Assignatories: []string{"user-vpaa"}})
	require.NoError(t, err)

	vpaa := workflow.Actor{ID: "user-vpaa", Role: workflow.RoleVPAA}
	rejected, err := engine.Reject(ctx, vpaa, doc.ID, &workflow.RejectRequest{
		Reason: workflow.ReasonNeedsRevision,
		Detail: "align with CHED memorandum order",
	})
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusRejected), rejected.Status)
	assert.Equal(t, string(workflow.StageVPAA), rejected.Stage)

	var notifs []model.NotificationModel
	require.NoError(t, db.Where("user_id = ? AND type = ?", faculty.ID, model.NotificationDocumentRejected).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Message, string(workflow.ReasonNeedsRevision))
	assert.GreaterOrEqual(t, notifier.countFor(faculty.ID), 1)

	rows := historyFor(t, db, doc.ID)
	require.Len(t, rows, 4)
	assert.Equal(t, string(workflow.StageVPAA), rows[3].Stage)
	assert.Equal(t, string(workflow.StatusRejected), rows[3].Status)
}
