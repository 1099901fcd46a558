package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	Orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

type CreateOrderRequest struct {
	PhoneNo *string `json:"phoneNo"`
}

type CancelOrderRequest struct {
	CartID string `json:"cartId" binding:"required"`
}

type ModifyPaymentRequest struct {
	CartID        string               `json:"cartId" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required,oneof=UPI CASH CARD WALLET"`
	PhoneNo       *string              `json:"phoneNo"`
}

// Create places an order from the caller's pending cart. With phoneNo set,
// managers and admins place it on behalf of the customer holding that number.
func (h *OrderHandler) Create(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.Orders.Place(c.Request.Context(), identity, req.PhoneNo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"cart_id": cart.ID,
	})
}

// Cancel moves an ORDERED cart to CANCELLED (manager/admin only)
func (h *OrderHandler) Cancel(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := h.Orders.Cancel(c.Request.Context(), identity, req.CartID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled successfully",
		"cart":    cart,
	})
}

// ModifyPayment attaches or changes the payment method of a customer's
// cart (admin only). With phoneNo set, the cart owner is the customer
// holding that number; without it, the admin's own stored phone is used.
func (h *OrderHandler) ModifyPayment(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req ModifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Orders.ModifyPayment(c.Request.Context(), identity, req.CartID, req.PaymentMethod, req.PhoneNo); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment modified successfully"})
}

// Fetch lists the ORDERED carts of the customer named by the phoneNo
// query parameter, defaulting to the caller's own phone (manager/admin)
func (h *OrderHandler) Fetch(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	items, err := h.Orders.OrderedCarts(c.Request.Context(), identity, queryPhone(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"formattedItems": items})
}

// FetchLatest returns the most recent cart of the customer named by the
// phoneNo query parameter, defaulting to the caller's own phone
// (manager/admin)
func (h *OrderHandler) FetchLatest(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	items, err := h.Orders.LatestCart(c.Request.Context(), identity, queryPhone(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"formattedItems": items})
}

func queryPhone(c *gin.Context) *string {
	if phone := c.Query("phoneNo"); phone != "" {
		return &phone
	}
	return nil
}
