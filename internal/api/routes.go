package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/auth"
	"github.com/opencampus/doctrack/internal/config"
	"github.com/opencampus/doctrack/internal/service"
	"github.com/opencampus/doctrack/internal/websocket"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Config        *config.Config
	DB            *gorm.DB
	Logger        *logrus.Logger
	Tokens        *auth.TokenManager
	Hub           *websocket.Hub
	Users         service.UserService
	Documents     service.DocumentService
	Notifications service.NotificationService
	Signatures    service.SignatureService
	Catalog       service.CatalogService
	Reports       service.ReportService
	Backups       service.BackupService
	Audit         service.AuditService
}

// SetupRoutes builds the full route tree.
func SetupRoutes(deps RouterDeps) *gin.Engine {
	if deps.Config != nil && config.IsProduction(deps.Config) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware(deps.Logger))
	router.Use(SecurityHeadersMiddleware())
	if deps.Config != nil && len(deps.Config.CORS.AllowedOrigins) > 0 {
		router.Use(CORSMiddleware(deps.Config.CORS.AllowedOrigins))
	}
	router.Use(RateLimitMiddleware(100, 200))

	healthController := NewHealthController(deps.DB, deps.Hub)
	router.GET("/health", healthController.Check)
	router.GET("/metrics", MetricsHandler)

	if deps.Hub != nil && deps.Tokens != nil {
		router.GET("/ws/notifications", websocket.Handler(deps.Hub, deps.Tokens, deps.Logger))
	}

	authController := NewAuthController(deps.Users, deps.Tokens)
	userController := NewUserController(deps.Users)
	catalogController := NewCatalogController(deps.Catalog)
	documentController := NewDocumentController(deps.Documents)
	notificationController := NewNotificationController(deps.Notifications)
	signatureController := NewSignatureController(deps.Signatures)
	reportController := NewReportController(deps.Reports)
	backupController := NewBackupController(deps.Backups)

	authRequired := auth.Middleware(deps.Tokens)
	adminOnly := auth.RequireAdmin()

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authController.Login)
		v1.GET("/auth/me", authRequired, authController.Me)

		users := v1.Group("/users", authRequired, adminOnly)
		{
			users.POST("", userController.Create)
			users.GET("", userController.List)
			users.GET("/:id", userController.Get)
			users.PUT("/:id", userController.Update)
			users.DELETE("/:id", userController.Delete)
		}

		designations := v1.Group("/designations", authRequired)
		{
			designations.GET("", catalogController.ListDesignations)
			designations.POST("", adminOnly, catalogController.CreateDesignation)
			designations.DELETE("/:id", adminOnly, catalogController.DeleteDesignation)
		}

		categories := v1.Group("/categories", authRequired)
		{
			categories.GET("", catalogController.ListCategories)
			categories.POST("", adminOnly, catalogController.CreateCategory)
			categories.DELETE("/:id", adminOnly, catalogController.DeleteCategory)
		}

		documents := v1.Group("/documents", authRequired)
		{
			documents.POST("", documentController.Submit)
			documents.GET("", documentController.List)
			documents.GET("/assigned", documentController.Assigned)
			documents.GET("/:id", documentController.Get)
			documents.GET("/:id/history", documentController.History)
			documents.GET("/:id/comments", documentController.Comments)
			documents.POST("/:id/forward", documentController.Forward)
			documents.POST("/:id/approve", documentController.Approve)
			documents.POST("/:id/reject", documentController.Reject)
			documents.POST("/:id/return", documentController.Return)
			documents.POST("/:id/comments", documentController.Comment)
			documents.POST("/:id/signature", documentController.Sign)
			documents.POST("/:id/archive", documentController.Archive)
			documents.POST("/:id/restore", documentController.Restore)
		}

		notifications := v1.Group("/notifications", authRequired)
		{
			notifications.GET("", notificationController.List)
			notifications.POST("/read-all", notificationController.MarkAllRead)
			notifications.POST("/:id/read", notificationController.MarkRead)
			notifications.DELETE("/:id", notificationController.Delete)
		}

		v1.PUT("/signature", authRequired, signatureController.Upsert)
		v1.GET("/signature", authRequired, signatureController.Get)

		v1.GET("/reports/analytics", authRequired, adminOnly, reportController.Analytics)

		backups := v1.Group("/backups", authRequired, adminOnly)
		{
			backups.POST("", backupController.Create)
			backups.GET("", backupController.List)
			backups.POST("/:filename/restore", backupController.Restore)
			backups.DELETE("/:filename", backupController.Delete)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found", c.Request.URL.Path)
	})

	return router
}
