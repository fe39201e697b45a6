package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/utils"
	"gorm.io/gorm"
)

const maxLineQuantity = 1000

type OrderLineRequest struct {
	MenuItemID uint
	Quantity   int
}

type OrderStats struct {
	TotalOrders      int64                        `json:"total_orders"`
	ByStatus         map[models.OrderStatus]int64 `json:"by_status"`
	Revenue          decimal.Decimal              `json:"revenue"`
	RevenueFormatted string                       `json:"revenue_formatted"`
}

type OrderService struct {
	db       *gorm.DB
	menus    *repository.MenuRepository
	orders   *repository.OrderRepository
	notifier Notifier
}

func NewOrderService(db *gorm.DB, menus *repository.MenuRepository, orders *repository.OrderRepository, notifier Notifier) *OrderService {
	if notifier == nil {
		notifier = Notifiers{}
	}
	return &OrderService{db: db, menus: menus, orders: orders, notifier: notifier}
}

func validateOrderLines(items []OrderLineRequest) error {
	if len(items) == 0 {
		return utils.NewValidation("Order must contain at least one item")
	}
	for i, it := range items {
		if it.MenuItemID == 0 {
			return utils.NewValidation("Item %d: menu item id is required", i+1)
		}
		if it.Quantity < 1 || it.Quantity > maxLineQuantity {
			return utils.NewValidation("Item %d: quantity must be between 1 and %d", i+1, maxLineQuantity)
		}
	}
	return nil
}

// Create prices the requested lines against the catalog and stores the order
// in one transaction. The referenced menu rows stay share-locked until commit,
// so every line is priced against the same catalog state that was validated.
// Any missing or unavailable item aborts the whole order.
func (s *OrderService) Create(ctx context.Context, userID uint, items []OrderLineRequest) (*models.Order, error) {
	if err := validateOrderLines(items); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuItemID)
	}

	order := &models.Order{
		UserID: userID,
		Status: models.StatusPending,
		Lines:  make([]models.OrderLine, 0, len(items)),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog, err := s.menus.LockForOrder(tx, ids)
		if err != nil {
			return fmt.Errorf("load menu items: %w", err)
		}

		for _, it := range items {
			menuItem, ok := catalog[it.MenuItemID]
			if !ok {
				return utils.NewNotFound("Menu item not found: %d", it.MenuItemID)
			}
			if !menuItem.Available {
				return utils.NewUnavailable("Menu item is not available: %s", menuItem.Name)
			}
			order.Lines = append(order.Lines, models.NewOrderLine(menuItem, it.Quantity))
		}
		order.Total = order.LinesTotal()

		if err := s.orders.Create(tx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"lines":    len(order.Lines),
		"total":    utils.FormatCurrency(order.Total),
	}).Info("order created")

	s.notifier.Publish(ctx, EventOrderCreated, order)
	return order, nil
}

func (s *OrderService) find(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFound("Order not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

// Get returns the order only to its owner.
func (s *OrderService) Get(ctx context.Context, requesterID, id uint) (*models.Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, utils.NewAccessDenied("Access denied to order: %d", id)
	}
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets any known status. Lines and total are never touched.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, rawStatus string) (*models.Order, error) {
	status, ok := models.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, utils.NewValidation("Invalid order status: %s", rawStatus)
	}

	found, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !found {
		return nil, utils.NewNotFound("Order not found: %d", id)
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("order status updated")

	s.notifier.Publish(ctx, EventOrderStatusUpdated, order)
	return order, nil
}

func (s *OrderService) Stats(ctx context.Context) (*OrderStats, error) {
	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	revenue, err := s.orders.Revenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	stats := &OrderStats{
		ByStatus:         make(map[models.OrderStatus]int64, len(models.OrderStatuses)),
		Revenue:          revenue,
		RevenueFormatted: utils.FormatCurrency(revenue),
	}
	for _, st := range models.OrderStatuses {
		stats.ByStatus[st] = 0
	}
	for _, c := range counts {
		stats.ByStatus[c.Status] += c.Count
		stats.TotalOrders += c.Count
	}
	return stats, nil
}
