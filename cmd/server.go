package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opencampus/doctrack/internal/api"
	"github.com/opencampus/doctrack/internal/auth"
	"github.com/opencampus/doctrack/internal/config"
	"github.com/opencampus/doctrack/internal/database"
	"github.com/opencampus/doctrack/internal/metrics"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/opencampus/doctrack/internal/service"
	"github.com/opencampus/doctrack/internal/websocket"
	"github.com/opencampus/doctrack/internal/workflow"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the doctrack API server.
The server listens on the configured host and port and serves the
document approval and tracking REST API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// hot-reload of the log level when an explicit config file is
		// in play; everything else requires a restart
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnChange(func(next *config.Config) {
				level, err := logrus.ParseLevel(next.Log.Level)
				if err != nil {
					logger.WithError(err).Warn("ignoring reloaded log level")
					return
				}
				logger.SetLevel(level)
				logger.WithField("level", level.String()).Info("log level reloaded")
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("config watcher disabled")
			} else {
				defer watcher.Stop()
			}
		}

		db, err := database.ConnectWithRetry(cfg.Database, 5, 2*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		routes, err := buildRouteTable(cfg)
		if err != nil {
			return err
		}

		tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
		if err != nil {
			return fmt.Errorf("failed to initialize token manager: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run()

		docRepo := repository.NewDocumentRepository(db)
		historyRepo := repository.NewHistoryRepository(db)
		commentRepo := repository.NewCommentRepository(db)
		notificationRepo := repository.NewNotificationRepository(db)
		userRepo := repository.NewUserRepository(db)
		signatureRepo := repository.NewSignatureRepository(db)
		systemLogRepo := repository.NewSystemLogRepository(db)
		designationRepo := repository.NewDesignationRepository(db)
		categoryRepo := repository.NewCategoryRepository(db)
		backupRepo := repository.NewBackupRepository(db)

		signatureSvc := service.NewSignatureService(signatureRepo, cfg.Auth.EncryptionKey)
		engine, err := workflow.NewEngine(db, routes, signatureSvc.Verifier(), hub, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize workflow engine: %w", err)
		}

		auditSvc := service.NewAuditService(systemLogRepo, logger)
		documentSvc := service.NewDocumentService(engine, docRepo, historyRepo, commentRepo, auditSvc)
		userSvc := service.NewUserService(userRepo)
		notificationSvc := service.NewNotificationService(notificationRepo)
		catalogSvc := service.NewCatalogService(designationRepo, categoryRepo)
		reportSvc := service.NewReportService(db, cfg.Workflow.DelayThresholdHours)
		backupSvc, err := service.NewBackupService(db, backupRepo, cfg.Backup.Dir)
		if err != nil {
			return fmt.Errorf("failed to initialize backup service: %w", err)
		}

		router := api.SetupRoutes(api.RouterDeps{
			Config:        cfg,
			DB:            db,
			Logger:        logger,
			Tokens:        tokens,
			Hub:           hub,
			Users:         userSvc,
			Documents:     documentSvc,
			Notifications: notificationSvc,
			Signatures:    signatureSvc,
			Catalog:       catalogSvc,
			Reports:       reportSvc,
			Backups:       backupSvc,
			Audit:         auditSvc,
		})

		// gauge refresh loop
		stopGauges := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if counts, err := docRepo.CountByStatus(); err == nil {
						for status, count := range counts {
							metrics.UpdateDocumentsByStatus(status, float64(count))
						}
					}
					metrics.UpdateDatabaseConnections(db)
				case <-stopGauges:
					return
				}
			}
		}()
		defer close(stopGauges)

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		logger.Info("server exited")
		return nil
	},
}

// buildRouteTable maps the configured routes into the workflow routing
// table, falling back to the institutional default when none are
// configured.
func buildRouteTable(cfg *config.Config) (workflow.RouteTable, error) {
	if len(cfg.Workflow.Routes) == 0 {
		return workflow.DefaultRouteTable(), nil
	}

	table := make(workflow.RouteTable, len(cfg.Workflow.Routes))
	for kind, route := range cfg.Workflow.Routes {
		stages := make([]workflow.Stage, 0, len(route.Stages))
		for _, s := range route.Stages {
			stages = append(stages, workflow.Stage(s))
		}
		table[kind] = workflow.Route{
			Stages:   stages,
			Terminal: workflow.Stage(route.Terminal),
		}
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workflow routing configuration: %w", err)
	}
	return table, nil
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
}
