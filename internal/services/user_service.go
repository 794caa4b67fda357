package services

import (
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

// CreateUser registers a new user. The email is lowercased before storage so
// signups and logins are case-insensitive.
func (s *userService) CreateUser(email, password, name string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	user := &models.User{Email: email, Name: name}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
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
