package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/config"
	"github.com/opencampus/doctrack/internal/database"
	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/utils"
	"github.com/opencampus/doctrack/internal/workflow"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a bootstrap administrator and catalog",
	Long: `Seed the database with the data a fresh installation needs:
a SYSTEM_ADMIN account, the default document categories and a starter
set of designations. Existing rows are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		email, _ := cmd.Flags().GetString("admin-email")
		password, _ := cmd.Flags().GetString("admin-password")
		if password == "" {
			return fmt.Errorf("--admin-password is required")
		}

		db, err := database.Connect(cfg.Database)
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

		if err := seedAdmin(db, email, password); err != nil {
			return err
		}
		if err := seedCatalog(db); err != nil {
			return err
		}

		log.Println("Seed completed successfully!")
		return nil
	},
}

func seedAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Administrator %s already exists, skipping", email)
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &model.UserModel{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         "System Administrator",
		PasswordHash: hash,
		Role:         string(workflow.RoleSystemAdmin),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}
	log.Printf("Created administrator %s", email)
	return nil
}

func seedCatalog(db *gorm.DB) error {
	categories := []struct {
		name string
		kind string
	}{
		{"Syllabus", model.CategoryKindAcademic},
		{"Grade Sheet", model.CategoryKindAcademic},
		{"Curriculum Proposal", model.CategoryKindAcademic},
		{"Budget Request", model.CategoryKindAdministrative},
		{"Facility Request", model.CategoryKindAdministrative},
	}

	now := time.Now()
	for _, c := range categories {
		var count int64
		if err := db.Model(&model.DocumentCategoryModel{}).Where("name = ?", c.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		category := &model.DocumentCategoryModel{
			ID:        uuid.New().String(),
			Name:      c.name,
			Kind:      c.kind,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(category).Error; err != nil {
			return fmt.Errorf("failed to create category %s: %w", c.name, err)
		}
		log.Printf("Created category %s (%s)", c.name, c.kind)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	seedCmd.Flags().String("admin-email", "admin@doctrack.local", "Bootstrap administrator email")
	seedCmd.Flags().String("admin-password", "", "Bootstrap administrator password (required)")
}
