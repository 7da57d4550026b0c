package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/repository"
	"github.com/opencampus/doctrack/internal/utils"
	"github.com/opencampus/doctrack/internal/workflow"
)

// UserService manages accounts and credential checks.
type UserService interface {
	Authenticate(email string, password string) (*model.UserModel, error)
	Create(req *CreateUserRequest) (*model.UserModel, error)
	Update(id string, req *UpdateUserRequest) (*model.UserModel, error)
	Deactivate(id string) error
	Get(id string) (*model.UserModel, error)
	List() ([]*model.UserModel, error)
}

// CreateUserRequest provisions an account.
type CreateUserRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          string `json:"role" binding:"required"`
	DesignationID string `json:"designation_id"`
}

// UpdateUserRequest changes mutable account fields. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	Name          *string `json:"name"`
	Role          *string `json:"role"`
	DesignationID *string `json:"designation_id"`
	Password      *string `json:"password"`
	IsActive      *bool   `json:"is_active"`
}

// userService implements UserService.
type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a user service.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Authenticate checks credentials and returns the active account.
// Failures are indistinguishable to the caller.
func (s *userService) Authenticate(email string, password string) (*model.UserModel, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, workflow.ErrUnauthorized
	}
	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, workflow.ErrUnauthorized
	}
	return user, nil
}

// Create provisions a new account.
func (s *userService) Create(req *CreateUserRequest) (*model.UserModel, error) {
	role := workflow.Role(req.Role)
	if !role.Valid() {
		return nil, workflow.Validation("unknown role: " + req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.UserModel{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         string(role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.DesignationID != "" {
		user.DesignationID = &req.DesignationID
	}

	if err := user.Validate(); err != nil {
		return nil, workflow.Validation(err.Error())
	}
	if err := s.repo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update changes an account.
func (s *userService) Update(id string, req *UpdateUserRequest) (*model.UserModel, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		role := workflow.Role(*req.Role)
		if !role.Valid() {
			return nil, workflow.Validation("unknown role: " + *req.Role)
		}
		user.Role = string(role)
	}
	if req.DesignationID != nil {
		if *req.DesignationID == "" {
			user.DesignationID = nil
		} else {
			user.DesignationID = req.DesignationID
		}
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, workflow.Validation("password must be at least 8 characters")
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := user.Validate(); err != nil {
		return nil, workflow.Validation(err.Error())
	}
	if err := s.repo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes an account. The row and its workflow
// footprint remain.
func (s *userService) Deactivate(id string) error {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workflow.ErrNotFound
		}
		return err
	}
	user.IsActive = false
	user.UpdatedAt = time.Now()
	return s.repo.Save(user)
}

// Get loads an account by ID.
func (s *userService) Get(id string) (*model.UserModel, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// List lists all accounts.
func (s *userService) List() ([]*model.UserModel, error) {
	return s.repo.FindAll()
}
