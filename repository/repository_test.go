package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

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

func seedMenu(t *testing.T, db *gorm.DB) []models.MenuItem {
	t.Helper()
	items := []models.MenuItem{
		{Name: "Margherita Pizza", Price: decimal.RequireFromString("12.99"), Category: "Pizza", Available: true},
		{Name: "Supreme Pizza", Price: decimal.RequireFromString("18.99"), Category: "Pizza", Available: false},
		{Name: "Coca Cola", Price: decimal.RequireFromString("2.99"), Category: "Drinks", Available: true},
	}
	require.NoError(t, db.Create(&items).Error)
	return items
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "a@example.com", Password: "x", Role: models.RoleCustomer}))
	err := repo.Create(ctx, &models.User{Email: "a@example.com", Password: "y", Role: models.RoleCustomer})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	exists, err := repo.ExistsByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMenuRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	seedMenu(t, db)
	repo := NewMenuRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx, MenuFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pizza, err := repo.List(ctx, MenuFilter{Category: "Pizza"})
	require.NoError(t, err)
	assert.Len(t, pizza, 2)

	available, err := repo.List(ctx, MenuFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, available, 2)

	both, err := repo.List(ctx, MenuFilter{Category: "Pizza", AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Margherita Pizza", both[0].Name)

	none, err := repo.List(ctx, MenuFilter{Category: "Desserts"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMenuRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	items := seedMenu(t, db)
	repo := NewMenuRepository(db)
	ctx := context.Background()

	deleted, err := repo.Delete(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, items[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindByID(ctx, items[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMenuRepositoryLockForOrder(t *testing.T) {
	db := setupTestDB(t)
	items := seedMenu(t, db)
	repo := NewMenuRepository(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		byID, err := repo.LockForOrder(tx, []uint{items[0].ID, items[2].ID, 999})
		require.NoError(t, err)
		assert.Len(t, byID, 2)
		assert.Equal(t, "Coca Cola", byID[items[2].ID].Name)
		_, ok := byID[999]
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestOrderRepositoryListsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	items := seedMenu(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, userID := range []uint{1, 2, 1} {
		line := models.NewOrderLine(items[0], i+1)
		order := &models.Order{
			UserID:    userID,
			Status:    models.StatusPending,
			Lines:     []models.OrderLine{line},
			Total:     line.Subtotal,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(db, order))
	}

	mine, err := repo.ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 3, mine[0].Lines[0].Quantity)
	assert.Equal(t, 1, mine[1].Lines[0].Quantity)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))
	assert.True(t, all[1].CreatedAt.After(all[2].CreatedAt))
}

func TestOrderRepositoryUpdateStatusAndStats(t *testing.T) {
	db := setupTestDB(t)
	items := seedMenu(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	var ids []uint
	for _, qty := range []int{1, 2} {
		line := models.NewOrderLine(items[0], qty)
		order := &models.Order{UserID: 1, Status: models.StatusPending, Lines: []models.OrderLine{line}, Total: line.Subtotal}
		require.NoError(t, repo.Create(db, order))
		ids = append(ids, order.ID)
	}

	found, err := repo.UpdateStatus(ctx, ids[0], models.StatusCancelled)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.UpdateStatus(ctx, 12345, models.StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, found)

	reloaded, err := repo.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, reloaded.Status)
	assert.Equal(t, "12.99", reloaded.Total.StringFixed(2))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	byStatus := map[models.OrderStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, int64(1), byStatus[models.StatusCancelled])
	assert.Equal(t, int64(1), byStatus[models.StatusPending])

	revenue, err := repo.Revenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "25.98", revenue.StringFixed(2))
}

func TestSessionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Revoke(ctx, "old", now.Add(-time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "live", now.Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "live", now.Add(time.Hour)))

	revoked, err := repo.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "never")
	require.NoError(t, err)
	assert.False(t, revoked)

	purged, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	revoked, err = repo.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
