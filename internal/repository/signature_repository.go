package repository

import (
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// SignatureRepository provides access to user signatures.
type SignatureRepository interface {
	Save(signature *model.SignatureModel) error
	FindByUserID(userID string) (*model.SignatureModel, error)
	DeleteByUserID(userID string) error
}

// signatureRepository implements SignatureRepository.
type signatureRepository struct {
	db *gorm.DB
}

// NewSignatureRepository creates a signature repository.
func NewSignatureRepository(db *gorm.DB) SignatureRepository {
	return &signatureRepository{db: db}
}

// Save saves a signature.
func (r *signatureRepository) Save(signature *model.SignatureModel) error {
	return r.db.Save(signature).Error
}

// FindByUserID finds a user's signature.
func (r *signatureRepository) FindByUserID(userID string) (*model.SignatureModel, error) {
	var signature model.SignatureModel
	if err := r.db.Where("user_id = ?", userID).First(&signature).Error; err != nil {
		return nil, err
	}
	return &signature, nil
}

// DeleteByUserID removes a user's signature.
func (r *signatureRepository) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.SignatureModel{}).Error
}
