package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Country    string    `json:"country" gorm:"not null;index"`
	Location   string    `json:"location"`
	Cuisine    string    `json:"cuisine"`
	Rating     float64   `json:"rating" gorm:"default:0"`
	PriceLevel int       `json:"price_level" gorm:"default:1"`
	Image      string    `json:"image"`
	Items      []Item    `json:"items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type Item struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	RestaurantID string     `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Name         string     `json:"name" gorm:"not null"`
	Description  string     `json:"description"`
	Price        float64    `json:"price" gorm:"not null"`
	Image        string     `json:"image"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
