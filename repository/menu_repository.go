package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuFilter struct {
	Category      string
	AvailableOnly bool
}

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) List(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	q := r.DB.WithContext(ctx).Model(&models.MenuItem{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.AvailableOnly {
		q = q.Where("available = ?", true)
	}

	items := []models.MenuItem{}
	err := q.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) Save(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

// Delete reports whether a row was removed.
func (r *MenuRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.MenuItem{}, id)
	return res.RowsAffected > 0, res.Error
}

// FindForUpdate loads one item with an exclusive row lock. tx must be a
// transaction.
func (r *MenuRepository) FindForUpdate(tx *gorm.DB, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// LockForOrder loads the given items with a shared row lock so their price and
// availability cannot change until tx commits. Missing ids are simply absent
// from the result.
func (r *MenuRepository) LockForOrder(tx *gorm.DB, ids []uint) (map[uint]models.MenuItem, error) {
	var items []models.MenuItem
	err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID, nil
}
