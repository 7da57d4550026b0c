package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/auth"
	"github.com/opencampus/doctrack/internal/service"
)

// BackupController manages database snapshots.
type BackupController struct {
	backups service.BackupService
}

// NewBackupController creates a backup controller.
func NewBackupController(backups service.BackupService) *BackupController {
	return &BackupController{backups: backups}
}

// Create handles POST /backups.
func (bc *BackupController) Create(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	backup, err := bc.backups.Create(c.Request.Context(), actor.ID)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, backup)
}

// List handles GET /backups.
func (bc *BackupController) List(c *gin.Context) {
	backups, err := bc.backups.List()
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, backups)
}

// Restore handles POST /backups/:filename/restore.
func (bc *BackupController) Restore(c *gin.Context) {
	filename := c.Param("filename")

	if err := bc.backups.Restore(c.Request.Context(), filename); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"filename": filename, "restored": true})
}

// Delete handles DELETE /backups/:filename.
func (bc *BackupController) Delete(c *gin.Context) {
	filename := c.Param("filename")

	if err := bc.backups.Delete(filename); err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{"filename": filename})
}
