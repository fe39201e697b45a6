package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Email    string
	Password string
	Role     models.Role
}

type seedItem struct {
	Name        string
	Description string
	Price       string
	Category    string
}

var sampleUsers = []seedUser{
	{"admin@foodordering.com", "admin123", models.RoleAdmin},
	{"customer@example.com", "customer123", models.RoleCustomer},
}

var sampleMenu = []seedItem{
	{"Margherita Pizza", "Tomato sauce, mozzarella and fresh basil", "12.99", "Pizza"},
	{"Pepperoni Pizza", "Classic pepperoni with mozzarella", "14.99", "Pizza"},
	{"Vegetarian Pizza", "Peppers, onions, mushrooms and olives", "13.99", "Pizza"},
	{"Hawaiian Pizza", "Ham and pineapple", "15.99", "Pizza"},
	{"Meat Lovers Pizza", "Pepperoni, sausage, bacon and ham", "17.99", "Pizza"},
	{"BBQ Chicken Pizza", "Grilled chicken, BBQ sauce and red onion", "16.99", "Pizza"},
	{"Four Cheese Pizza", "Mozzarella, cheddar, parmesan and gorgonzola", "15.49", "Pizza"},
	{"Supreme Pizza", "Everything on it", "18.99", "Pizza"},
	{"Classic Burger", "Beef patty, lettuce, tomato and onion", "9.99", "Burgers"},
	{"Cheeseburger", "Beef patty with cheddar", "10.99", "Burgers"},
	{"Bacon Burger", "Beef patty with crispy bacon", "12.99", "Burgers"},
	{"Double Cheeseburger", "Two patties, two slices of cheddar", "14.99", "Burgers"},
	{"Veggie Burger", "Plant-based patty", "11.99", "Burgers"},
	{"BBQ Bacon Burger", "Bacon, onion rings and BBQ sauce", "15.99", "Burgers"},
	{"Mushroom Swiss Burger", "Sauteed mushrooms and swiss cheese", "13.99", "Burgers"},
	{"Spicy Jalapeño Burger", "Pepper jack and jalapeños", "13.49", "Burgers"},
	{"Coca Cola", "330ml can", "2.99", "Drinks"},
	{"Pepsi", "330ml can", "2.99", "Drinks"},
	{"Orange Juice", "Freshly squeezed", "3.99", "Drinks"},
	{"Apple Juice", "Cold pressed", "3.99", "Drinks"},
	{"Water", "500ml bottle", "1.99", "Drinks"},
	{"Sparkling Water", "500ml bottle", "2.49", "Drinks"},
	{"Iced Tea", "Lemon iced tea", "2.79", "Drinks"},
	{"Coffee", "Fresh brewed", "3.49", "Drinks"},
	{"Hot Chocolate", "With whipped cream", "3.99", "Drinks"},
	{"Vanilla Milkshake", "Thick vanilla shake", "4.99", "Drinks"},
	{"Chocolate Milkshake", "Thick chocolate shake", "4.99", "Drinks"},
	{"Strawberry Milkshake", "Thick strawberry shake", "4.99", "Drinks"},
}

// SeedSampleData creates the demo accounts and menu. Users are matched by
// email; the menu is only seeded into an empty catalog. Safe to run on every
// start.
func SeedSampleData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, su := range sampleUsers {
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ?", su.Email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := models.User{Email: su.Email, Password: string(hashed), Role: su.Role}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", su.Email, err)
			}
			utils.InfoLogger.Printf("Seeded user %s (role=%s)", su.Email, su.Role)
		}

		var items int64
		if err := tx.Model(&models.MenuItem{}).Count(&items).Error; err != nil {
			return err
		}
		if items > 0 {
			return nil
		}

		menu := make([]models.MenuItem, 0, len(sampleMenu))
		for _, si := range sampleMenu {
			menu = append(menu, models.MenuItem{
				Name:        si.Name,
				Description: si.Description,
				Price:       decimal.RequireFromString(si.Price),
				Category:    si.Category,
				Available:   true,
			})
		}
		if err := tx.Create(&menu).Error; err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
		utils.InfoLogger.Printf("Seeded %d menu items", len(menu))
		return nil
	})
}
