package service

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/opencampus/doctrack/internal/workflow"
)

// backupTables lists the tables included in a snapshot, in restore
// order (parents before children).
var backupTables = []string{
	"designations",
	"document_categories",
	"designation_categories",
	"users",
	"documents",
	"assignatories",
	"document_history",
	"document_comments",
	"notifications",
	"signatures",
	"system_logs",
}

// BackupService exports and restores database snapshots as tar.gz
// archives of per-table JSON dumps.
type BackupService interface {
	Create(ctx context.Context, createdBy string) (*model.BackupModel, error)
	List() ([]*model.BackupModel, error)
	Restore(ctx context.Context, filename string) error
	Delete(filename string) error
}

// backupService implements BackupService.
type backupService struct {
	db   *gorm.DB
	repo repository.BackupRepository
	dir  string
}

// NewBackupService creates a backup service rooted at dir.
func NewBackupService(db *gorm.DB, repo repository.BackupRepository, dir string) (BackupService, error) {
	if dir == "" {
		dir = "./backups"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &backupService{db: db, repo: repo, dir: dir}, nil
}

// Create snapshots every domain table into a new archive and records
// it.
func (s *backupService) Create(ctx context.Context, createdBy string) (*model.BackupModel, error) {
	filename := fmt.Sprintf("doctrack_%s.tar.gz", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	tarWriter := tar.NewWriter(gzWriter)

	for _, table := range backupTables {
		if err := s.exportTable(ctx, tarWriter, table); err != nil {
			tarWriter.Close()
			gzWriter.Close()
			os.Remove(path)
			return nil, fmt.Errorf("failed to export table %s: %w", table, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup file: %w", err)
	}

	backup := &model.BackupModel{
		ID:        uuid.New().String(),
		Filename:  filename,
		Path:      path,
		Size:      info.Size(),
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(backup); err != nil {
		return nil, err
	}
	return backup, nil
}

// exportTable dumps one table as a JSON entry in the archive.
func (s *backupService) exportTable(ctx context.Context, tw *tar.Writer, table string) error {
	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return err
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	header := &tar.Header{
		Name:    table + ".json",
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = tw.Write(data)
	return err
}

// List lists recorded backups newest first.
func (s *backupService) List() ([]*model.BackupModel, error) {
	return s.repo.FindAll()
}

// Restore replaces the contents of every snapshotted table with the
// archive's rows, inside a single transaction.
func (s *backupService) Restore(ctx context.Context, filename string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return workflow.ErrNotFound
		}
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	defer gzReader.Close()

	dumps := make(map[string][]map[string]interface{})
	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}

		table := strings.TrimSuffix(filepath.Base(header.Name), ".json")
		data, err := io.ReadAll(tarReader)
		if err != nil {
			return fmt.Errorf("failed to read archive entry %s: %w", header.Name, err)
		}

		var rows []map[string]interface{}
		if err := json.Unmarshal(bytes.TrimSpace(data), &rows); err != nil {
			return fmt.Errorf("failed to decode archive entry %s: %w", header.Name, err)
		}
		dumps[table] = rows
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// delete children before parents, insert parents first
		for i := len(backupTables) - 1; i >= 0; i-- {
			table := backupTables[i]
			if _, ok := dumps[table]; !ok {
				continue
			}
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
		}
		for _, table := range backupTables {
			rows, ok := dumps[table]
			if !ok || len(rows) == 0 {
				continue
			}
			if err := tx.Table(table).Create(rows).Error; err != nil {
				return fmt.Errorf("failed to restore table %s: %w", table, err)
			}
		}
		return nil
	})
}

// Delete removes a backup file and its record.
func (s *backupService) Delete(filename string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}

	backup, err := s.findByFilename(filename)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove backup file: %w", err)
	}
	return s.repo.Delete(backup.ID)
}

// resolve maps a filename to a path inside the backup directory,
// rejecting traversal attempts.
func (s *backupService) resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", workflow.Validation("invalid backup filename")
	}

	absDir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(absDir, filename)
	if filepath.Dir(path) != absDir {
		return "", workflow.Validation("invalid backup filename")
	}
	return path, nil
}

func (s *backupService) findByFilename(filename string) (*model.BackupModel, error) {
	backups, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	for _, b := range backups {
		if b.Filename == filename {
			return b, nil
		}
	}
	return nil, workflow.ErrNotFound
}
