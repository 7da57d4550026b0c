package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/opencampus/doctrack/internal/service"
	"github.com/opencampus/doctrack/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBackupService(t *testing.T) (service.BackupService, *gorm.DB, string) {
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
		&model.SystemLogModel{},
		&model.BackupModel{},
	)
	require.NoError(t, err)

	dir := t.TempDir()
	svc, err := service.NewBackupService(db, repository.NewBackupRepository(db), dir)
	require.NoError(t, err)
	return svc, db, dir
}

func TestBackupCreateWritesArchive(t *testing.T) {
	svc, db, dir := setupBackupService(t)

	require.NoError(t, db.Create(&model.DesignationModel{ID: "des-1", Name: "Registrar"}).Error)

	backup, err := svc.Create(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(backup.Filename, "doctrack_"))
	assert.True(t, strings.HasSuffix(backup.Filename, ".tar.gz"))
	assert.Equal(t, "admin-1", backup.CreatedBy)
	assert.Positive(t, backup.Size)

	_, err = os.Stat(filepath.Join(dir, backup.Filename))
	require.NoError(t, err)

	listed, err := svc.List()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, backup.ID, listed[0].ID)
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	svc, db, _ := setupBackupService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.DesignationModel{ID: "des-1", Name: "Registrar"}).Error)
	require.NoError(t, db.Create(&model.UserModel{
		ID: "u1", Email: "reg@campus.edu", Name: "Registrar Staff",
		PasswordHash: "x", Role: "INSTRUCTOR", IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&model.DocumentModel{
		ID: "d1", ReferenceID: "DOC-2025-000001", Title: "Transcript Request",
		CategoryID: "c1", Priority: "Medium", Status: "PENDING", Stage: "INSTRUCTOR",
		SubmittedByID: "u1",
	}).Error)

	backup, err := svc.Create(ctx, "admin-1")
	require.NoError(t, err)

	// mutate state after the snapshot
	require.NoError(t, db.Exec("DELETE FROM documents").Error)
	require.NoError(t, db.Create(&model.UserModel{
		ID: "u2", Email: "late@campus.edu", Name: "Late Arrival",
		PasswordHash: "x", Role: "INSTRUCTOR", IsActive: true,
	}).Error)

	require.NoError(t, svc.Restore(ctx, backup.Filename))

	var docCount int64
	require.NoError(t, db.Model(&model.DocumentModel{}).Count(&docCount).Error)
	assert.Equal(t, int64(1), docCount, "the snapshotted document is back")

	var doc model.DocumentModel
	require.NoError(t, db.Where("id = ?", "d1").First(&doc).Error)
	assert.Equal(t, "Transcript Request", doc.Title)

	var userCount int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount, "rows created after the snapshot are gone")
}

func TestBackupRestoreUnknownFile(t *testing.T) {
	svc, _, _ := setupBackupService(t)
	err := svc.Restore(context.Background(), "doctrack_20990101_000000.tar.gz")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestBackupFilenameTraversalRejected(t *testing.T) {
	svc, _, _ := setupBackupService(t)

	for _, name := range []string{"", "../secrets.tar.gz", "a/b.tar.gz"} {
		err := svc.Restore(context.Background(), name)
		assert.True(t, workflow.IsValidation(err), "filename %q must be rejected", name)
	}
}

func TestBackupDelete(t *testing.T) {
	svc, _, dir := setupBackupService(t)

	backup, err := svc.Create(context.Background(), "admin-1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(backup.Filename))

	_, err = os.Stat(filepath.Join(dir, backup.Filename))
	assert.True(t, os.IsNotExist(err))

	listed, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, listed)

	err = svc.Delete(backup.Filename)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}
