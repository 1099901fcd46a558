package handlers

import (
	"net/http"

	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// ListRestaurants returns restaurants visible to the caller
func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	restaurants, err := h.Catalog.Restaurants(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(restaurants),
		"formatted": restaurants,
	})
}

// GetMenu returns the menu of one restaurant, scoped by the caller's country
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	restaurantID := c.Param("id")

	menu, err := h.Catalog.Menu(c.Request.Context(), identity, restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(menu),
		"menu":  menu,
	})
}
