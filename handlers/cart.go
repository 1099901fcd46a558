package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{Carts: carts}
}

type MutateCartRequest struct {
	ItemID       string `json:"itemId" binding:"required"`
	RestaurantID string `json:"restaurantId" binding:"required"`
	Type         string `json:"type" binding:"required,oneof=increment decrement delete"`
}

// Mutate applies one increment/decrement/delete action to the caller's
// pending cart and returns the updated summary
func (h *CartHandler) Mutate(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req MutateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.Carts.Mutate(c.Request.Context(), identity.UserID, req.ItemID, req.RestaurantID, services.CartAction(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"cart":    summary,
	})
}

// Fetch returns the caller's pending cart lines
func (h *CartHandler) Fetch(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	items, err := h.Carts.Fetch(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"formattedItems": items})
}
