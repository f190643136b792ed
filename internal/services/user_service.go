package services

import (
	"errors"

	"github.com/menulink/menulink-api/internal/models"
	"gorm.io/gorm"
)

// ErrUserExists is returned when registering an email that already has an
// account.
var ErrUserExists = errors.New("user already exists")

// UserService manages restaurant owner accounts.
type UserService interface {
	// CreateUser stores a new account. The email must be unique;
	// ErrUserExists is returned when it is already taken.
	CreateUser(user *models.User) error
	// GetUserByEmail looks up an account for login.
	GetUserByEmail(email string) (*models.User, error)
	// GetUserByID looks up the account behind an authenticated request.
	GetUserByID(id uint) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	var existing models.User
	err := s.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.Create(user).Error
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
