package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/database"
	"github.com/opencampus/doctrack/internal/websocket"
)

// HealthController reports process and dependency health.
type HealthController struct {
	db  *gorm.DB
	hub *websocket.Hub
}

// NewHealthController creates a health controller.
func NewHealthController(db *gorm.DB, hub *websocket.Hub) *HealthController {
	return &HealthController{db: db, hub: hub}
}

// Check handles GET /health.
func (hc *HealthController) Check(c *gin.Context) {
	status := "healthy"
	checks := make(map[string]interface{})

	if hc.db != nil {
		if database.CheckHealth(hc.db) {
			checks["database"] = "healthy"
		} else {
			status = "unhealthy"
			checks["database"] = "unhealthy"
		}
	} else {
		checks["database"] = "not configured"
	}

	if hc.hub != nil {
		checks["websocket_clients"] = hc.hub.ClientCount()
	}

	httpStatus := http.StatusOK
	if status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}
