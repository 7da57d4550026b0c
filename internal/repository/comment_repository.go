package repository

import (
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// CommentRepository provides access to document comments.
type CommentRepository interface {
	Save(comment *model.DocumentCommentModel) error
	FindByDocumentID(documentID string) ([]*model.DocumentCommentModel, error)
}

// commentRepository implements CommentRepository.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Save saves a comment.
func (r *commentRepository) Save(comment *model.DocumentCommentModel) error {
	return r.db.Save(comment).Error
}

// FindByDocumentID lists a document's comments oldest first.
func (r *commentRepository) FindByDocumentID(documentID string) ([]*model.DocumentCommentModel, error) {
	var comments []*model.DocumentCommentModel
	err := r.db.Preload("Author").Where("document_id = ?", documentID).
		Order("created_at ASC").Find(&comments).Error
	return comments, err
}
