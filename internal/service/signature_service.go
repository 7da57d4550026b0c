package service

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/opencampus/doctrack/internal/utils"
	"github.com/opencampus/doctrack/internal/workflow"
)

var signaturePasscodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// SignatureService manages per-user signatures and their passcodes.
type SignatureService interface {
	Upsert(userID string, imageURI string, passcode string) (*model.SignatureModel, error)
	Get(userID string) (*model.SignatureModel, error)
	Delete(userID string) error

	// Verifier adapts passcode checking for the workflow engine.
	Verifier() workflow.PasscodeVerifier
}

// signatureService implements SignatureService.
type signatureService struct {
	repo          repository.SignatureRepository
	encryptionKey string
}

// NewSignatureService creates a signature service. The key encrypts
// stored passcodes and must satisfy the cipher's minimum length.
func NewSignatureService(repo repository.SignatureRepository, encryptionKey string) SignatureService {
	return &signatureService{repo: repo, encryptionKey: encryptionKey}
}

// Upsert creates or replaces the user's signature.
func (s *signatureService) Upsert(userID string, imageURI string, passcode string) (*model.SignatureModel, error) {
	if imageURI == "" {
		return nil, workflow.Validation("signature image is required")
	}
	if !signaturePasscodePattern.MatchString(passcode) {
		return nil, workflow.Validation("passcode must be exactly 6 digits")
	}

	encrypted, err := utils.Encrypt(passcode, s.encryptionKey)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	existing, err := s.repo.FindByUserID(userID)
	switch {
	case err == nil:
		existing.ImageURI = imageURI
		existing.EncryptedPasscode = encrypted
		existing.UpdatedAt = now
		if err := s.repo.Save(existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		signature := &model.SignatureModel{
			ID:                uuid.New().String(),
			UserID:            userID,
			ImageURI:          imageURI,
			EncryptedPasscode: encrypted,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := s.repo.Save(signature); err != nil {
			return nil, err
		}
		return signature, nil
	default:
		return nil, err
	}
}

// Get returns the user's signature.
func (s *signatureService) Get(userID string) (*model.SignatureModel, error) {
	return s.repo.FindByUserID(userID)
}

// Delete removes the user's signature.
func (s *signatureService) Delete(userID string) error {
	return s.repo.DeleteByUserID(userID)
}

// Verifier returns a passcode verifier bound to this service's key.
func (s *signatureService) Verifier() workflow.PasscodeVerifier {
	return func(encryptedPasscode, passcode string) (bool, error) {
		return utils.VerifyPasscode(encryptedPasscode, passcode, s.encryptionKey)
	}
}
