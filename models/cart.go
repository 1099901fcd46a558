package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartStatus represents all possible states of a cart
type CartStatus string

const (
	StatusPending   CartStatus = "PENDING"
	StatusOrdered   CartStatus = "ORDERED"
	StatusCompleted CartStatus = "COMPLETED"
	StatusCancelled CartStatus = "CANCELLED"
)

// PaymentMethod is the closed set of accepted payment methods
type PaymentMethod string

const (
	PaymentUPI    PaymentMethod = "UPI"
	PaymentCash   PaymentMethod = "CASH"
	PaymentCard   PaymentMethod = "CARD"
	PaymentWallet PaymentMethod = "WALLET"
)

// ValidPaymentMethod reports whether m is one of the defined methods
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentUPI, PaymentCash, PaymentCard, PaymentWallet:
		return true
	}
	return false
}

// Cart holds a user's pending selection and, once ordered, the order itself.
// TotalPrice is denormalized and must equal the sum of line prices.
type Cart struct {
	ID            string         `json:"id" gorm:"primaryKey"`
	UserID        string         `json:"user_id" gorm:"not null;index"`
	User          User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID  string         `json:"restaurant_id" gorm:"not null"`
	Restaurant    Restaurant     `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status        CartStatus     `json:"status" gorm:"not null;default:'PENDING';index"`
	TotalPrice    float64        `json:"total_price" gorm:"not null;default:0"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	Lines         []CartLine     `json:"lines,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CartLine associates one item with a quantity inside a cart.
// Price is the line subtotal: item unit price times quantity.
type CartLine struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CartID    string    `json:"cart_id" gorm:"not null;index"`
	ItemID    string    `json:"item_id" gorm:"not null"`
	Item      Item      `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
