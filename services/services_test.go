package services

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.RevokedSession{},
	))
	return db
}

type recordedEvent struct {
	Event string
	Data  interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingNotifier) Publish(_ context.Context, event string, data interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Event: event, Data: data})
	return nil
}

func (r *recordingNotifier) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Event)
	}
	return out
}

func createItem(t *testing.T, db *gorm.DB, name, price, category string, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  category,
		Available: available,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func newOrderService(db *gorm.DB, n Notifier) *OrderService {
	return NewOrderService(db, repository.NewMenuRepository(db), repository.NewOrderRepository(db), n)
}

func newMenuService(db *gorm.DB, cache MenuCache, n Notifier) *MenuService {
	return NewMenuService(db, repository.NewMenuRepository(db), cache, n)
}

func boolPtr(b bool) *bool {
	return &b
}
