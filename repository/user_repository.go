package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Vuhuydiet/smartrent-ai/models"
)

// UserRepository defines the interface for interacting with user rows.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Delete(id uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user row. ID and timestamps are populated by GORM.
func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID fetches a user by primary key. A missing row is not an error;
// it returns nil, nil.
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail fetches a user by email. A missing row returns nil, nil.
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user by email '%s': %w", email, err)
	}
	return &user, nil
}

// Delete removes a user by primary key, reporting whether a row existed.
func (r *userRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete user %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
