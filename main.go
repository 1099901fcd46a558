package main

import (
	"log"
	"net/http"
	"os"

	"food-ordering-api/auth"
	"food-ordering-api/cache"
	"food-ordering-api/config"
	"food-ordering-api/events"
	"food-ordering-api/handlers"
	"food-ordering-api/routes"
	"food-ordering-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if cfg.SeedDB {
		if err := config.Seed(db); err != nil {
			log.Fatal("Failed to seed database:", err)
		}
	}

	codec, err := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal("Failed to configure token codec:", err)
	}
	resolver := auth.NewResolver(db, codec)

	catalogCache := cache.New(cfg.RedisAddr, cfg.CacheTTL)
	defer catalogCache.Close()

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	carts := services.NewCartService(db, cfg.StoreTimeout)
	orders := services.NewOrderService(db, producer, cfg.StoreTimeout)
	catalog := services.NewCatalogService(db, catalogCache, cfg.StoreTimeout)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "access_token"},
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Ordering API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, routes.Handlers{
		Resolver: resolver,
		Auth:     handlers.NewAuthHandler(db, codec),
		Cart:     handlers.NewCartHandler(carts),
		Catalog:  handlers.NewCatalogHandler(catalog),
		Order:    handlers.NewOrderHandler(orders),
	})

	log.Printf("🚀 Server running on http://localhost%s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
