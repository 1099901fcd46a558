package services

import (
	"context"
	"errors"
	"time"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

// CartAction is the mutation requested against a pending cart
type CartAction string

const (
	ActionIncrement CartAction = "increment"
	ActionDecrement CartAction = "decrement"
	ActionDelete    CartAction = "delete"
)

// CartSummary is returned after every successful mutation
type CartSummary struct {
	CartID       string  `json:"cart_id"`
	RestaurantID string  `json:"restaurant_id"`
	TotalPrice   float64 `json:"total_price"`
	LineCount    int     `json:"line_count"`
}

// CartLineView is a flattened line for the cart fetch response
type CartLineView struct {
	ItemID       string  `json:"id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	RestaurantID string  `json:"restaurant_id"`
	CartID       string  `json:"cart_id"`
}

// CartService owns the pending-cart state machine. Every mutation that
// touches both a line and the cart total runs inside one transaction so
// the invariant total == Σ line.Price holds after every commit, even
// under concurrent callers on the same cart.
type CartService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewCartService(db *gorm.DB, timeout time.Duration) *CartService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CartService{db: db, timeout: timeout}
}

// Mutate applies one increment/decrement/delete action for (user, item,
// restaurant) and returns the updated cart summary.
func (s *CartService) Mutate(ctx context.Context, userID, itemID, restaurantID string, action CartAction) (*CartSummary, error) {
	switch action {
	case ActionIncrement, ActionDecrement, ActionDelete:
	default:
		return nil, ErrInvalidAction
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var summary CartSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := pendingCart(tx, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if action != ActionIncrement {
				return ErrNoSuchCart
			}
			cart = &models.Cart{
				UserID:       userID,
				RestaurantID: restaurantID,
				Status:       models.StatusPending,
				TotalPrice:   0,
			}
			if err := tx.Create(cart).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case cart.RestaurantID != restaurantID:
			// A pending cart holds items from a single restaurant only.
			if action == ActionIncrement {
				return ErrRestaurantMismatch
			}
			return ErrNoSuchCart
		}

		var item models.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		if item.RestaurantID != restaurantID {
			return ErrRestaurantMismatch
		}

		var line models.CartLine
		err = tx.First(&line, "cart_id = ? AND item_id = ?", cart.ID, item.ID).Error
		hasLine := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		switch action {
		case ActionIncrement:
			if !hasLine {
				line = models.CartLine{
					CartID:   cart.ID,
					ItemID:   item.ID,
					Quantity: 1,
					Price:    item.Price,
				}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
			} else {
				line.Quantity++
				line.Price += item.Price
				if err := tx.Save(&line).Error; err != nil {
					return err
				}
			}
			cart.TotalPrice += item.Price

		case ActionDecrement:
			if !hasLine {
				return ErrLineNotFound
			}
			if line.Quantity > 1 {
				line.Quantity--
				line.Price -= item.Price
				if err := tx.Save(&line).Error; err != nil {
					return err
				}
				cart.TotalPrice -= item.Price
			} else {
				// Removing the last unit removes exactly what the line contributed.
				if err := tx.Delete(&line).Error; err != nil {
					return err
				}
				cart.TotalPrice -= line.Price
			}

		case ActionDelete:
			if !hasLine {
				return ErrLineNotFound
			}
			if err := tx.Delete(&line).Error; err != nil {
				return err
			}
			cart.TotalPrice -= line.Price
		}

		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("total_price", cart.TotalPrice).Error; err != nil {
			return err
		}

		var lineCount int64
		if err := tx.Model(&models.CartLine{}).Where("cart_id = ?", cart.ID).
			Count(&lineCount).Error; err != nil {
			return err
		}

		summary = CartSummary{
			CartID:       cart.ID,
			RestaurantID: cart.RestaurantID,
			TotalPrice:   cart.TotalPrice,
			LineCount:    int(lineCount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Fetch returns the lines of the caller's pending cart, joined with their
// items. An empty slice (not an error) when no pending cart exists.
func (s *CartService) Fetch(ctx context.Context, userID string) ([]CartLineView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cart, err := pendingCart(s.db.WithContext(ctx), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []CartLineView{}, nil
	}
	if err != nil {
		return nil, err
	}
	return cartLineViews(s.db.WithContext(ctx), cart)
}

// pendingCart loads the most recent PENDING cart for a user
func pendingCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ? AND status = ?", userID, models.StatusPending).
		Order("created_at desc").
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// cartLineViews flattens a cart's lines with their item records
func cartLineViews(tx *gorm.DB, cart *models.Cart) ([]CartLineView, error) {
	var lines []models.CartLine
	if err := tx.Preload("Item").Where("cart_id = ?", cart.ID).Find(&lines).Error; err != nil {
		return nil, err
	}
	views := make([]CartLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, CartLineView{
			ItemID:       l.ItemID,
			Name:         l.Item.Name,
			Image:        l.Item.Image,
			Price:        l.Item.Price,
			Quantity:     l.Quantity,
			RestaurantID: cart.RestaurantID,
			CartID:       cart.ID,
		})
	}
	return views, nil
}
