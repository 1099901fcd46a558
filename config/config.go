package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"food-ordering-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Addr         string
	DBPath       string
	JWTSecret    string
	TokenTTL     time.Duration
	StoreTimeout time.Duration
	RedisAddr    string
	CacheTTL     time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	SeedDB       bool
}

func Load() Config {
	return Config{
		Addr:         ":" + getenv("PORT", "8080"),
		DBPath:       getenv("DB_PATH", "food_ordering.db"),
		JWTSecret:    getenv("JWT_SECRET", "food_ordering_super_secret_2024"),
		TokenTTL:     getDuration("TOKEN_TTL", 24*time.Hour),
		StoreTimeout: getDuration("STORE_TIMEOUT", 5*time.Second),
		RedisAddr:    getenv("REDIS_ADDR", ""),
		CacheTTL:     getDuration("CACHE_TTL", 5*time.Minute),
		KafkaBrokers: splitCSV(getenv("KAFKA_BROKERS", "")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "order-events"),
		SeedDB:       getBool("SEED_DB", false),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// OpenDB opens the sqlite store and migrates all models
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time; a larger pool makes concurrent
	// transactions fail with SQLITE_BUSY instead of serializing
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Item{},
		&models.Cart{},
		&models.CartLine{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
