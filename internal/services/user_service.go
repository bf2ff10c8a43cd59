package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"gorm.io/gorm"
)

// ProfileUpdate replaces every editable profile field. Empty means cleared.
type ProfileUpdate struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UserService interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no user with that phone", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	update.Phone = strings.TrimSpace(update.Phone)
	update.Address = strings.TrimSpace(update.Address)

	if update.Phone != "" {
		if !phonePattern.MatchString(update.Phone) {
			return nil, fmt.Errorf("%w: phone must be 10 digits", ErrValidation)
		}
		var taken int64
		err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("phone = ? AND id <> ?", update.Phone, id).
			Count(&taken).Error
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, fmt.Errorf("%w: phone already belongs to another account", ErrConflict)
		}
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"name":    update.Name,
		"phone":   update.Phone,
		"address": update.Address,
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with another account claiming the phone
		return nil, fmt.Errorf("%w: phone already belongs to another account", ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, id)
}
