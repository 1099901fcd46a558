package services

import (
	"context"
	"errors"
	"log"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/events"
	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"gorm.io/gorm"
)

// OrderService drives the cart lifecycle past PENDING: placing orders
// (including proxy orders on behalf of a customer identified by phone),
// cancellation and payment attachment.
type OrderService struct {
	db       *gorm.DB
	producer *events.Producer
	timeout  time.Duration
}

func NewOrderService(db *gorm.DB, producer *events.Producer, timeout time.Duration) *OrderService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OrderService{db: db, producer: producer, timeout: timeout}
}

// Place transitions the caller's pending cart to ORDERED. A non-nil phone
// requests a proxy order: managers and admins place the order in the name
// of the customer holding that phone number, and the cart's ownership
// moves to them. Members may only order for themselves.
func (s *OrderService) Place(ctx context.Context, caller *auth.Identity, phone *string) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var placed models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		targetID := caller.UserID
		if phone != nil && *phone != "" {
			if caller.Role != models.RoleManager && caller.Role != models.RoleAdmin {
				return ErrRoleForbidden
			}
			var target models.User
			if err := tx.First(&target, "phone = ?", *phone).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCustomerNotFound
				}
				return err
			}
			targetID = target.ID
		}

		cart, err := pendingCart(tx, caller.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoPendingCart
		}
		if err != nil {
			return err
		}
		if err := statemachine.CanTransition(cart.Status, models.StatusOrdered, caller.Role); err != nil {
			return ErrInvalidState
		}

		updates := map[string]any{
			"status":  models.StatusOrdered,
			"user_id": targetID,
		}
		if err := tx.Model(cart).Updates(updates).Error; err != nil {
			return err
		}
		placed = *cart
		placed.Status = models.StatusOrdered
		placed.UserID = targetID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.OrderPlaced, &placed)
	return &placed, nil
}

// Cancel moves an ORDERED cart to CANCELLED. Route gating restricts this
// to managers and admins; the state machine enforces it again here.
func (s *OrderService) Cancel(ctx context.Context, caller *auth.Identity, cartID string) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var cancelled models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, "id = ?", cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}
		if err := statemachine.CanTransition(cart.Status, models.StatusCancelled, caller.Role); err != nil {
			if cart.Status != models.StatusOrdered {
				return ErrInvalidState
			}
			return ErrRoleForbidden
		}
		if err := tx.Model(&cart).Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		cancelled = cart
		cancelled.Status = models.StatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.OrderCancelled, &cancelled)
	return &cancelled, nil
}

// ModifyPayment attaches or changes the payment method of a customer's
// cart. The customer is resolved from the request phone, or from the
// caller's own stored phone when none is given. Attaching payment to an
// ORDERED cart completes it; a COMPLETED cart only has its method
// replaced.
func (s *OrderService) ModifyPayment(ctx context.Context, caller *auth.Identity, cartID string, method models.PaymentMethod, phone *string) error {
	if !models.ValidPaymentMethod(method) {
		return ErrInvalidAction
	}
	target, err := targetPhone(caller, phone)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var completed *models.Cart
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.User
		if err := tx.First(&customer, "phone = ?", target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		var cart models.Cart
		if err := tx.First(&cart, "id = ?", cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}
		if cart.UserID != customer.ID {
			return ErrOwnershipMismatch
		}

		switch cart.Status {
		case models.StatusOrdered:
			if err := statemachine.CanTransition(cart.Status, models.StatusCompleted, caller.Role); err != nil {
				return ErrRoleForbidden
			}
			if err := tx.Model(&cart).Updates(map[string]any{
				"status":         models.StatusCompleted,
				"payment_method": method,
			}).Error; err != nil {
				return err
			}
			cart.Status = models.StatusCompleted
			completed = &cart
			return nil
		case models.StatusCompleted:
			return tx.Model(&cart).Update("payment_method", method).Error
		default:
			return ErrInvalidState
		}
	})
	if err != nil {
		return err
	}

	if completed != nil {
		s.emit(ctx, events.OrderCompleted, completed)
	}
	return nil
}

// OrderedCarts lists the ORDERED carts of the target customer as
// flattened line views. The customer is resolved from the request phone,
// or from the caller's own stored phone when none is given.
func (s *OrderService) OrderedCarts(ctx context.Context, caller *auth.Identity, phone *string) ([]CartLineView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	customer, err := s.targetCustomer(ctx, caller, phone)
	if err != nil {
		return nil, err
	}

	var carts []models.Cart
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", customer.ID, models.StatusOrdered).
		Order("updated_at desc").
		Find(&carts).Error; err != nil {
		return nil, err
	}

	views := []CartLineView{}
	for i := range carts {
		lines, err := cartLineViews(s.db.WithContext(ctx), &carts[i])
		if err != nil {
			return nil, err
		}
		views = append(views, lines...)
	}
	return views, nil
}

// LatestCart returns the most recently updated cart of the target
// customer. The customer is resolved from the request phone, or from the
// caller's own stored phone when none is given.
func (s *OrderService) LatestCart(ctx context.Context, caller *auth.Identity, phone *string) ([]CartLineView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	customer, err := s.targetCustomer(ctx, caller, phone)
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	err = s.db.WithContext(ctx).
		Where("user_id = ?", customer.ID).
		Order("updated_at desc").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []CartLineView{}, nil
	}
	if err != nil {
		return nil, err
	}
	return cartLineViews(s.db.WithContext(ctx), &cart)
}

// targetPhone picks the customer phone a staff operation acts on: the
// request phone when given, otherwise the caller's own stored phone.
func targetPhone(caller *auth.Identity, phone *string) (string, error) {
	if phone != nil && *phone != "" {
		return *phone, nil
	}
	if caller.Phone != nil && *caller.Phone != "" {
		return *caller.Phone, nil
	}
	return "", ErrCustomerNotFound
}

func (s *OrderService) targetCustomer(ctx context.Context, caller *auth.Identity, phone *string) (*models.User, error) {
	target, err := targetPhone(caller, phone)
	if err != nil {
		return nil, err
	}
	var customer models.User
	if err := s.db.WithContext(ctx).First(&customer, "phone = ?", target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// emit publishes a lifecycle event. Event delivery is best-effort: a
// broker failure must never fail a committed transition.
func (s *OrderService) emit(ctx context.Context, eventType string, cart *models.Cart) {
	ev := events.OrderEvent{
		Type:         eventType,
		CartID:       cart.ID,
		UserID:       cart.UserID,
		RestaurantID: cart.RestaurantID,
		TotalPrice:   cart.TotalPrice,
	}
	if err := s.producer.Publish(ctx, ev); err != nil {
		log.Printf("order event %s for cart %s not published: %v", eventType, cart.ID, err)
	}
}
