package repository_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDocumentRepo(t *testing.T) (repository.DocumentRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.DesignationModel{},
		&model.DocumentCategoryModel{},
		&model.DocumentModel{},
		&model.AssignatoryModel{},
	)
	require.NoError(t, err)

	return repository.NewDocumentRepository(db), db
}

func seedDoc(t *testing.T, db *gorm.DB, id, status, stage, submitter string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.DocumentModel{
		ID:            id,
		ReferenceID:   "DOC-2025-" + id,
		Title:         "Document " + id,
		CategoryID:    "c1",
		Priority:      "Medium",
		Status:        status,
		Stage:         stage,
		SubmittedByID: submitter,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}).Error)
}

func TestFindByReferenceID(t *testing.T) {
	repo, db := setupDocumentRepo(t)
	seedDoc(t, db, "d1", "PENDING", "DEAN", "u1", time.Now())

	doc, err := repo.FindByReferenceID("DOC-2025-d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.ID)

	_, err = repo.FindByReferenceID("DOC-2025-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindByFilter(t *testing.T) {
	repo, db := setupDocumentRepo(t)
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)

	seedDoc(t, db, "d1", "PENDING", "INSTRUCTOR", "u1", base)
	seedDoc(t, db, "d2", "PENDING", "DEAN", "u1", base.Add(time.Hour))
	seedDoc(t, db, "d3", "APPROVED", "PRESIDENT", "u2", base.Add(2*time.Hour))
	seedDoc(t, db, "d4", "REJECTED", "DEAN", "u2", base.Add(3*time.Hour))

	status := "PENDING"
	docs, total, err := repo.FindByFilter(&repository.DocumentFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, docs, 2)
	assert.Equal(t, "d2", docs[0].ID, "newest first")

	stage := "DEAN"
	docs, total, err = repo.FindByFilter(&repository.DocumentFilter{Status: &status, Stage: &stage})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "d2", docs[0].ID)

	submitter := "u2"
	_, total, err = repo.FindByFilter(&repository.DocumentFilter{SubmittedByID: &submitter})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	search := "2025-d3"
	docs, _, err = repo.FindByFilter(&repository.DocumentFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "d3", docs[0].ID, "reference IDs are searchable")

	from := base.Add(90 * time.Minute)
	docs, total, err = repo.FindByFilter(&repository.DocumentFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFindByFilterPagination(t *testing.T) {
	repo, db := setupDocumentRepo(t)
	base := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedDoc(t, db, fmt.Sprintf("d%d", i), "PENDING", "DEAN", "u1", base.Add(time.Duration(i)*time.Minute))
	}

	docs, total, err := repo.FindByFilter(&repository.DocumentFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total, "total counts all matches, not the page")
	require.Len(t, docs, 2)
	assert.Equal(t, "d4", docs[0].ID)

	docs, _, err = repo.FindByFilter(&repository.DocumentFilter{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "d0", docs[0].ID)
}

func TestCountByStatus(t *testing.T) {
	repo, db := setupDocumentRepo(t)
	now := time.Now()

	seedDoc(t, db, "d1", "PENDING", "DEAN", "u1", now)
	seedDoc(t, db, "d2", "PENDING", "VPAA", "u1", now)
	seedDoc(t, db, "d3", "APPROVED", "PRESIDENT", "u1", now)

	// archived documents drop out of the counts
	require.NoError(t, db.Model(&model.DocumentModel{}).
		Where("id = ?", "d3").Update("is_archived", true).Error)

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["PENDING"])
	assert.Zero(t, counts["APPROVED"])
}

func TestFindAssignedTo(t *testing.T) {
	repo, db := setupDocumentRepo(t)
	now := time.Now()

	seedDoc(t, db, "d1", "PENDING", "DEAN", "u1", now)
	seedDoc(t, db, "d2", "PENDING", "VPAA", "u1", now.Add(time.Minute))

	// member at the current stage of d1, at a past stage of d2
	require.NoError(t, db.Create(&model.AssignatoryModel{
		ID: "a1", DocumentID: "d1", UserID: "dean-1", Stage: "DEAN", CreatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&model.AssignatoryModel{
		ID: "a2", DocumentID: "d2", UserID: "dean-1", Stage: "DEAN", CreatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&model.AssignatoryModel{
		ID: "a3", DocumentID: "d2", UserID: "vpaa-1", Stage: "VPAA", CreatedAt: now,
	}).Error)

	docs, err := repo.FindAssignedTo("dean-1", "")
	require.NoError(t, err)
	require.Len(t, docs, 1, "only documents currently waiting on the user")
	assert.Equal(t, "d1", docs[0].ID)

	docs, err = repo.FindAssignedTo("vpaa-1", "VPAA")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "d2", docs[0].ID)

	docs, err = repo.FindAssignedTo("vpaa-1", "DEAN")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
