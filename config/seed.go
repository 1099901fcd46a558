package config

import (
	"log"

	"food-ordering-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates an empty database with sample users, restaurants and menu
// items for local runs. Idempotent: does nothing once any user exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("seed: users already present, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminPhone := "+911000000001"
	managerPhone := "+911000000002"
	memberPhone := "+911000000003"
	users := []models.User{
		{Name: "Seed Admin", Email: "admin@example.com", PasswordHash: string(hash), Role: models.RoleAdmin, Country: "IN", Phone: &adminPhone},
		{Name: "Seed Manager", Email: "manager@example.com", PasswordHash: string(hash), Role: models.RoleManager, Country: "IN", Phone: &managerPhone},
		{Name: "Seed Member", Email: "member@example.com", PasswordHash: string(hash), Role: models.RoleMember, Country: "IN", Phone: &memberPhone},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	restaurants := []models.Restaurant{
		{
			Name: "Spice Route", Country: "IN", Location: "Bengaluru", Cuisine: "South Indian",
			Rating: 4.4, PriceLevel: 2,
			Items: []models.Item{
				{Name: "Masala Dosa", Description: "Crisp dosa with potato filling", Price: 120},
				{Name: "Filter Coffee", Description: "Strong South Indian coffee", Price: 40},
				{Name: "Thali", Description: "Full meal with sides", Price: 250},
			},
		},
		{
			Name: "Noodle Bar", Country: "SG", Location: "Chinatown", Cuisine: "Chinese",
			Rating: 4.1, PriceLevel: 3,
			Items: []models.Item{
				{Name: "Laksa", Description: "Spicy coconut noodle soup", Price: 9.5},
				{Name: "Char Siu Bao", Description: "Barbecue pork buns", Price: 6},
			},
		},
	}
	if err := db.Create(&restaurants).Error; err != nil {
		return err
	}

	log.Printf("seed: created %d users, %d restaurants", len(users), len(restaurants))
	return nil
}
