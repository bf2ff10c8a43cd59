package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartService manages the cart of one user at a time
type CartService interface {
	Get(ctx context.Context, userID string) ([]models.CartRow, error)
	// Upsert sets the quantity of an item, adding it when absent
	Upsert(ctx context.Context, userID string, menuItemID uint, quantity int) ([]models.CartRow, error)
	// Remove deletes one item. Removing an absent item is not an error.
	Remove(ctx context.Context, userID string, menuItemID uint) error
	Clear(ctx context.Context, userID string) error
}

type cartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) CartService {
	return &cartService{db: db}
}

// loadCart joins the user's cart entries with the live catalog
func loadCart(db *gorm.DB, userID string) ([]models.CartRow, error) {
	rows := []models.CartRow{}
	err := db.Table("cart_items").
		Select("cart_items.menu_item_id, cart_items.quantity, menu_items.name, menu_items.price, menu_items.image_url, menu_items.category").
		Joins("JOIN menu_items ON menu_items.id = cart_items.menu_item_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *cartService) Get(ctx context.Context, userID string) ([]models.CartRow, error) {
	return loadCart(s.db.WithContext(ctx), userID)
}

func (s *cartService) Upsert(ctx context.Context, userID string, menuItemID uint, quantity int) ([]models.CartRow, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.MenuItem{}, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, menuItemID)
		}
		return nil, err
	}

	entry := models.CartItem{UserID: userID, MenuItemID: menuItemID, Quantity: quantity}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	return loadCart(db, userID)
}

func (s *cartService) Remove(ctx context.Context, userID string, menuItemID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&models.CartItem{}).Error
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
