package repository

import (
	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	Save(user *model.UserModel) error
	FindByID(id string) (*model.UserModel, error)
	FindByEmail(email string) (*model.UserModel, error)
	FindAll() ([]*model.UserModel, error)
	FindByRole(role string) ([]*model.UserModel, error)
	FindByDesignation(designationID string) ([]*model.UserModel, error)
}

// userRepository implements UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Save saves a user.
func (r *userRepository) Save(user *model.UserModel) error {
	return r.db.Save(user).Error
}

// FindByID finds a user by ID with their designation.
func (r *userRepository) FindByID(id string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.Preload("Designation").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(email string) (*model.UserModel, error) {
	var user model.UserModel
	if err := r.db.Preload("Designation").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll lists all users.
func (r *userRepository) FindAll() ([]*model.UserModel, error) {
	var users []*model.UserModel
	err := r.db.Preload("Designation").Order("created_at ASC").Find(&users).Error
	return users, err
}

// FindByRole lists active users with the given role.
func (r *userRepository) FindByRole(role string) ([]*model.UserModel, error) {
	var users []*model.UserModel
	err := r.db.Where("role = ? AND is_active = ?", role, true).
		Order("name ASC").Find(&users).Error
	return users, err
}

// FindByDesignation lists active users under a designation.
func (r *userRepository) FindByDesignation(designationID string) ([]*model.UserModel, error) {
	var users []*model.UserModel
	err := r.db.Where("designation_id = ? AND is_active = ?", designationID, true).
		Order("name ASC").Find(&users).Error
	return users, err
}
