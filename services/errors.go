package services

import "errors"

// Sentinel errors surfaced by the services. Handlers map these to HTTP
// statuses at the request boundary; anything else is a store fault.
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNoMenuItems        = errors.New("no items found for this restaurant")
	ErrUserNotFound       = errors.New("user not found")
	ErrCustomerNotFound   = errors.New("customer not found")

	ErrNoSuchCart    = errors.New("no pending cart for this restaurant")
	ErrNoPendingCart = errors.New("no pending cart")
	ErrLineNotFound  = errors.New("item is not in the cart")
	ErrCartNotFound  = errors.New("cart not found")
	ErrInvalidState  = errors.New("cart is not in a valid state for this operation")
	ErrInvalidAction = errors.New("invalid cart action")

	ErrRestaurantMismatch = errors.New("a pending cart already exists for a different restaurant")
	ErrOwnershipMismatch  = errors.New("cart does not belong to this customer")
	ErrRoleForbidden      = errors.New("caller role does not permit this operation")
)
