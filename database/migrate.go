package database

import (
	"fmt"

	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/utils"
	"gorm.io/gorm"
)

// Models is every table the service owns, in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.MenuItem{},
	&models.Order{},
	&models.OrderLine{},
	&models.RevokedSession{},
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
