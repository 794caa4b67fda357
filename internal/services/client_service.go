package services

import (
	"github.com/google/uuid"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ClientService interface {
	ListClients() ([]models.OAuthClient, error)
	// CreateClient provisions a client and returns the plaintext secret,
	// which is shown exactly once; only the bcrypt hash is stored.
	CreateClient(id, name, scopes string) (models.OAuthClient, string, error)
	DeleteClient(id string) error
}

type clientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) ClientService {
	return &clientService{db: db}
}

func (s *clientService) ListClients() ([]models.OAuthClient, error) {
	var clients []models.OAuthClient
	if err := s.db.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *clientService) CreateClient(id, name, scopes string) (models.OAuthClient, string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	secret := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return models.OAuthClient{}, "", err
	}

	client := models.OAuthClient{
		ID:         id,
		Secret:     string(hash),
		Name:       name,
		Scopes:     scopes,
		GrantTypes: "password refresh_token",
	}
	if err := s.db.Create(&client).Error; err != nil {
		return models.OAuthClient{}, "", err
	}
	return client, secret, nil
}

func (s *clientService) DeleteClient(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.OAuthClient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
