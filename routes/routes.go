package routes

import (
	"food-ordering-api/auth"
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes wires into the router
type Handlers struct {
	Resolver *auth.Resolver
	Auth     *handlers.AuthHandler
	Cart     *handlers.CartHandler
	Catalog  *handlers.CatalogHandler
	Order    *handlers.OrderHandler
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Auth.Register)
		public.POST("/auth/login", h.Auth.Login)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes (any role) ────────────────────────────
	authed := r.Group("/api")
	authed.Use(middleware.AuthRequired(h.Resolver))
	{
		authed.GET("/profile", h.Auth.Profile)

		authed.GET("/catalog/restaurants", h.Catalog.ListRestaurants)
		authed.GET("/catalog/restaurants/:id/menu", h.Catalog.GetMenu)

		authed.POST("/cart/add", h.Cart.Mutate)
		authed.GET("/cart/fetch", h.Cart.Fetch)

		authed.POST("/order/create", h.Order.Create)
	}

	// ── Manager/admin routes ───────────────────────────────────────
	staff := r.Group("/api/order")
	staff.Use(middleware.AuthRequired(h.Resolver),
		middleware.RoleRequired(models.RoleManager, models.RoleAdmin))
	{
		staff.GET("/fetch", h.Order.Fetch)
		staff.GET("/fetch/latest", h.Order.FetchLatest)
		staff.POST("/cancel", h.Order.Cancel)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/order/payment")
	admin.Use(middleware.AuthRequired(h.Resolver),
		middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/modify", h.Order.ModifyPayment)
	}
}
