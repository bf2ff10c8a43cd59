package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ClientService manages the OAuth2 clients allowed on the admin surface
type ClientService interface {
	// CreateClient registers a client and returns it with its plain secret.
	// The secret is only stored as a bcrypt hash.
	CreateClient(ctx context.Context, name, domain, scopes string) (*models.OAuthClient, string, error)
	GetClientByID(ctx context.Context, id string) (*models.OAuthClient, error)
	ListClients(ctx context.Context) ([]models.OAuthClient, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) ClientService {
	return &clientService{db: db}
}

func (s *clientService) CreateClient(ctx context.Context, name, domain, scopes string) (*models.OAuthClient, string, error) {
	if name == "" {
		return nil, "", fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if scopes == "" {
		scopes = models.ScopeOrdersAdmin
	}

	secret := uuid.NewString()
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash secret: %w", err)
	}

	client := &models.OAuthClient{
		ID:         uuid.NewString(),
		Secret:     string(hashed),
		Name:       name,
		Domain:     domain,
		Scopes:     scopes,
		GrantTypes: "client_credentials",
	}
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, "", err
	}
	return client, secret, nil
}

func (s *clientService) GetClientByID(ctx context.Context, id string) (*models.OAuthClient, error) {
	var client models.OAuthClient
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &client, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]models.OAuthClient, error) {
	clients := []models.OAuthClient{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OAuthClient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: client %s", ErrNotFound, id)
	}
	// Revoke outstanding tokens with the client
	return s.db.WithContext(ctx).Where("client_id = ?", id).Delete(&models.OAuthToken{}).Error
}
