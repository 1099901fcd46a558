package services

import (
	"math"
	"path/filepath"
	"testing"

	"food-ordering-api/auth"
	"food-ordering-api/config"
	"food-ordering-api/models"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.Role, country string, phone string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Country:      country,
	}
	if phone != "" {
		user.Phone = &phone
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func identityOf(u *models.User) *auth.Identity {
	return &auth.Identity{
		UserID:  u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Country: u.Country,
		Phone:   u.Phone,
	}
}

func createRestaurant(t *testing.T, db *gorm.DB, name, country string, prices ...float64) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: name, Country: country, Location: name + " St", Cuisine: "Test"}
	for i, p := range prices {
		r.Items = append(r.Items, models.Item{Name: name + " item " + string(rune('A'+i)), Price: p})
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create restaurant %s: %v", name, err)
	}
	return r
}

// assertCartInvariant checks total == Σ line.Price and line.Price == qty × unit
func assertCartInvariant(t *testing.T, db *gorm.DB, cartID string) {
	t.Helper()
	var cart models.Cart
	if err := db.First(&cart, "id = ?", cartID).Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	var lines []models.CartLine
	if err := db.Preload("Item").Where("cart_id = ?", cartID).Find(&lines).Error; err != nil {
		t.Fatalf("load lines: %v", err)
	}
	var sum float64
	for _, l := range lines {
		sum += l.Price
		if want := l.Item.Price * float64(l.Quantity); !closeTo(l.Price, want) {
			t.Errorf("line %s price = %v, want qty %d × unit %v = %v", l.ID, l.Price, l.Quantity, l.Item.Price, want)
		}
		if l.Quantity < 1 {
			t.Errorf("line %s quantity = %d, want >= 1", l.ID, l.Quantity)
		}
	}
	if !closeTo(cart.TotalPrice, sum) {
		t.Errorf("cart total = %v, want sum of line prices %v", cart.TotalPrice, sum)
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
