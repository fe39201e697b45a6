package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestMigrateCreatesTables(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))

	for _, m := range Models {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestSeedSampleDataIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedSampleData(db))
	require.NoError(t, SeedSampleData(db))

	var users, items int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.MenuItem{}).Count(&items)
	assert.Equal(t, int64(2), users)
	assert.Equal(t, int64(len(sampleMenu)), items)

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@foodordering.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))

	var pizza models.MenuItem
	require.NoError(t, db.Where("name = ?", "Margherita Pizza").First(&pizza).Error)
	assert.Equal(t, "12.99", pizza.Price.StringFixed(2))
	assert.True(t, pizza.Available)
}

func TestSeedKeepsExistingCatalog(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&models.MenuItem{Name: "House Special", Category: "Pizza", Available: true}).Error)

	require.NoError(t, SeedSampleData(db))

	var items int64
	db.Model(&models.MenuItem{}).Count(&items)
	assert.Equal(t, int64(1), items)
}
