package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"gorm.io/gorm"
)

// MenuService provides read access to the catalog
type MenuService interface {
	// List returns items matching filter, best rated first
	List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error)
	// ListCategories returns the distinct categories in ascending order
	ListCategories(ctx context.Context) ([]string, error)
	// GetByID returns one item or ErrNotFound
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
}

type menuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) MenuService {
	return &menuService{db: db}
}

// likeEscaper makes search text match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *menuService) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	query := s.db.WithContext(ctx).Model(&models.MenuItem{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	items := []models.MenuItem{}
	if err := query.Order("rating DESC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *menuService) ListCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := s.db.WithContext(ctx).Model(&models.MenuItem{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *menuService) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &item, nil
}
