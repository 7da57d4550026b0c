package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/auth"
	"github.com/opencampus/doctrack/internal/service"
	"github.com/opencampus/doctrack/internal/utils"
)

// NotificationController exposes the caller's notification inbox.
type NotificationController struct {
	notifications service.NotificationService
}

// NewNotificationController creates a notification controller.
func NewNotificationController(notifications service.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// List handles GET /notifications.
func (nc *NotificationController) List(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	unreadOnly := c.Query("unread") == "true"
	limit := queryInt(c, "limit", 50)

	notifications, err := nc.notifications.List(actor.ID, unreadOnly, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	unread, err := nc.notifications.CountUnread(actor.ID)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"notifications": notifications, "unread": unread})
}

// MarkRead handles POST /notifications/:id/read.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	id := c.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(c, http.StatusBadRequest, "invalid notification ID", err.Error())
		return
	}

	if err := nc.notifications.MarkRead(actor.ID, id); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"id": id, "is_read": true})
}

// MarkAllRead handles POST /notifications/read-all.
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	if err := nc.notifications.MarkAllRead(actor.ID); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"read": true})
}

// Delete handles DELETE /notifications/:id.
func (nc *NotificationController) Delete(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	id := c.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(c, http.StatusBadRequest, "invalid notification ID", err.Error())
		return
	}

	if err := nc.notifications.Delete(actor.ID, id); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"id": id})
}
