package services

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/Vuhuydiet/smartrent-ai/apperrors"
	"github.com/Vuhuydiet/smartrent-ai/models"
	"github.com/Vuhuydiet/smartrent-ai/repository"
)

// UserService provides CRUD over user accounts.
type UserService interface {
	CreateUser(data models.UserCreate) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	DeleteUser(id uint) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateUser registers a new account. The duplicate-email check is a
// lookup before insert; the unique index on email is the backstop for
// concurrent identical signups.
func (s *userService) CreateUser(data models.UserCreate) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(data.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:          data.Email,
		FullName:       data.FullName,
		HashedPassword: string(hashed),
		IsActive:       data.IsActive,
		IsSuperuser:    data.IsSuperuser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("INFO: [UserService] Created user %d ('%s').", user.ID, user.Email)
	return user, nil
}

// GetUserByID fetches a user by id. A missing user returns nil, nil.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByEmail fetches a user by email. A missing user returns nil, nil.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.GetByEmail(email)
}

// DeleteUser removes a user, reporting whether it existed.
func (s *userService) DeleteUser(id uint) (bool, error) {
	return s.userRepo.Delete(id)
}
