package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/auth"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/opencampus/doctrack/internal/service"
	"github.com/opencampus/doctrack/internal/utils"
	"github.com/opencampus/doctrack/internal/workflow"
)

// DocumentController handles document submission, tracking and
// workflow transitions.
type DocumentController struct {
	documents service.DocumentService
}

// NewDocumentController creates a document controller.
func NewDocumentController(documents service.DocumentService) *DocumentController {
	return &DocumentController{documents: documents}
}

// Submit handles POST /documents.
func (dc *DocumentController) Submit(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req workflow.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	doc, err := dc.documents.Submit(c.Request.Context(), actor, &req, auditMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, doc)
}

// List handles GET /documents.
func (dc *DocumentController) List(c *gin.Context) {
	filter := &repository.DocumentFilter{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("stage"); v != "" {
		filter.Stage = &v
	}
	if v := c.Query("category"); v != "" {
		filter.CategoryID = &v
	}
	if v := c.Query("submitted_by"); v != "" {
		filter.SubmittedByID = &v
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}
	if v := c.Query("archived"); v != "" {
		archived := v == "true"
		filter.Archived = &archived
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid to date", err.Error())
			return
		}
		filter.To = &t
	}

	docs, total, err := dc.documents.List(filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	Paginated(c, docs, NewPagination(filter.Page, filter.PageSize, total))
}

// Assigned handles GET /documents/assigned: documents waiting on the
// caller at the current stage.
func (dc *DocumentController) Assigned(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	docs, err := dc.documents.AssignedTo(actor.ID, c.Query("stage"))
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, docs)
}

// Get handles GET /documents/:id.
func (dc *DocumentController) Get(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	doc, err := dc.documents.Get(actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	canAct, err := dc.documents.CanAct(c.Request.Context(), actor, id)
	if err != nil {
		canAct = false
	}

	Success(c, gin.H{"document": doc, "can_act": canAct})
}

// History handles GET /documents/:id/history.
func (dc *DocumentController) History(c *gin.Context) {
	_, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	entries, err := dc.documents.History(id)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, entries)
}

// Comments handles GET /documents/:id/comments.
func (dc *DocumentController) Comments(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	comments, err := dc.documents.Comments(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, comments)
}

// Forward handles POST /documents/:id/forward.
func (dc *DocumentController) Forward(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	var req workflow.ForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	doc, err := dc.documents.Forward(c.Request.Context(), actor, id, &req, auditMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, doc)
}

// NoteRequest carries an optional free-text note.
type NoteRequest struct {
	Note string `json:"note"`
}

// Approve handles POST /documents/:id/approve.
func (dc *DocumentController) Approve(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	var req NoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			Error(c, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}

	doc, err := dc.documents.Approve(c.Request.Context(), actor, id, req.Note, auditMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, doc)
}

// Reject handles POST /documents/:id/reject.
func (dc *DocumentController) Reject(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	var req workflow.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	doc, err := dc.documents.Reject(c.Request.Context(), actor, id, &req, auditMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, doc)
}

// Return handles POST /documents/:id/return.
func (dc *DocumentController) Return(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	var req NoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			Error(c, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}

	doc, err := dc.documents.Return(c.Request.Context(), actor, id, req.Note, auditMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, doc)
}

// CommentRequest carries a comment body.
type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// Comment handles POST /documents/:id/comments.
func (dc *DocumentController) Comment(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	comment, err := dc.documents.Comment(c.Request.Context(), actor, id, req.Body, auditMeta(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, comment)
}

// SignRequest carries the signature passcode.
type SignRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// Sign handles POST /documents/:id/signature.
func (dc *DocumentController) Sign(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	var req SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	if err := dc.documents.AttachSignature(c.Request.Context(), actor, id, req.Passcode, auditMeta(c)); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"id": id, "signed": true})
}

// Archive handles POST /documents/:id/archive.
func (dc *DocumentController) Archive(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	if err := dc.documents.Archive(c.Request.Context(), actor, id, auditMeta(c)); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"id": id, "is_archived": true})
}

// Restore handles POST /documents/:id/restore.
func (dc *DocumentController) Restore(c *gin.Context) {
	actor, id, ok := dc.actorAndID(c)
	if !ok {
		return
	}

	if err := dc.documents.Restore(c.Request.Context(), actor, id, auditMeta(c)); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"id": id, "is_archived": false})
}

// actorAndID pulls the authenticated actor and a valid document ID,
// writing the error response itself when either is missing.
func (dc *DocumentController) actorAndID(c *gin.Context) (workflow.Actor, string, bool) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return workflow.Actor{}, "", false
	}

	id := c.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(c, http.StatusBadRequest, "invalid document ID", err.Error())
		return workflow.Actor{}, "", false
	}
	return actor, id, true
}

func auditMeta(c *gin.Context) service.AuditMeta {
	return service.AuditMeta{
		RequestID: c.GetString("request_id"),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
