package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/utils"
	"gorm.io/gorm"
)

// decimal(10,2)
var maxPrice = decimal.RequireFromString("99999999.99")

type MenuItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Available   *bool
	ImageURL    string
}

func (in *MenuItemInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	switch {
	case in.Name == "":
		return utils.NewValidation("Name is required")
	case len(in.Name) > 255:
		return utils.NewValidation("Name must be at most 255 characters")
	case in.Category == "":
		return utils.NewValidation("Category is required")
	case len(in.Category) > 100:
		return utils.NewValidation("Category must be at most 100 characters")
	case in.Price.IsNegative() || in.Price.GreaterThan(maxPrice):
		return utils.NewValidation("Price must be between 0 and %s", maxPrice.StringFixed(2))
	case !in.Price.Equal(in.Price.Round(2)):
		return utils.NewValidation("Price must have at most 2 decimal places")
	}
	return nil
}

type MenuService struct {
	db       *gorm.DB
	repo     *repository.MenuRepository
	cache    MenuCache
	notifier Notifier
}

func NewMenuService(db *gorm.DB, repo *repository.MenuRepository, cache MenuCache, notifier Notifier) *MenuService {
	if cache == nil {
		cache = noopMenuCache{}
	}
	if notifier == nil {
		notifier = Notifiers{}
	}
	return &MenuService{db: db, repo: repo, cache: cache, notifier: notifier}
}

func menuNotFound(id uint) error {
	return utils.NewNotFound("Menu item not found with id: %d", id)
}

func (s *MenuService) List(ctx context.Context, filter repository.MenuFilter) ([]models.MenuItem, error) {
	if items, ok := s.cache.GetList(ctx, filter); ok {
		return items, nil
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	s.cache.SetList(ctx, filter, items)
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, menuNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return item, nil
}

func (s *MenuService) Create(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Category:    in.Category,
		Available:   true,
		ImageURL:    in.ImageURL,
	}
	if in.Available != nil {
		item.Available = *in.Available
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.changed(ctx, EventMenuItemCreated, item)
	return item, nil
}

// Update replaces the item's fields. A nil Available keeps the current flag.
func (s *MenuService) Update(ctx context.Context, id uint, in MenuItemInput) (*models.MenuItem, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Description = in.Description
	item.Price = in.Price.Round(2)
	item.Category = in.Category
	item.ImageURL = in.ImageURL
	if in.Available != nil {
		item.Available = *in.Available
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	s.changed(ctx, EventMenuItemUpdated, item)
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if !deleted {
		return menuNotFound(id)
	}

	s.changed(ctx, EventMenuItemDeleted, map[string]uint{"id": id})
	return nil
}

// ToggleAvailability flips the available flag under a row lock so two
// concurrent toggles cannot cancel out into a lost update.
func (s *MenuService) ToggleAvailability(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item *models.MenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.FindForUpdate(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return menuNotFound(id)
		}
		if err != nil {
			return err
		}

		found.Available = !found.Available
		if err := tx.Model(found).Update("available", found.Available).Error; err != nil {
			return err
		}
		item = found
		return nil
	})
	if err != nil {
		if _, ok := utils.AsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("toggle availability: %w", err)
	}

	s.changed(ctx, EventMenuItemUpdated, item)
	return item, nil
}

func (s *MenuService) changed(ctx context.Context, event string, data interface{}) {
	s.cache.Invalidate(ctx)
	utils.InfoLogger.WithFields(logrus.Fields{"event": event}).Info("menu changed")
	s.notifier.Publish(ctx, event, data)
}
