package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("order_lines.id ASC")
}

// Create inserts the order and its lines through tx.
func (r *OrderRepository) Create(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Lines", preloadLines).
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.DB.WithContext(ctx).
		Preload("Lines", preloadLines).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.DB.WithContext(ctx).
		Preload("Lines", preloadLines).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatus touches only the status column. It reports whether the order
// exists.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

type StatusCount struct {
	Status models.OrderStatus
	Count  int64
}

func (r *OrderRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// Revenue sums order totals, leaving out cancelled orders.
func (r *OrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var rows []struct {
		Total decimal.Decimal
	}
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("total").
		Where("status <> ?", models.StatusCancelled).
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.Total)
	}
	return sum, nil
}
