package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig
	JWT    JWTConfig
	Orders OrdersConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// OrdersConfig controls order lifecycle timing.
type OrdersConfig struct {
	// ReviewDelay is how long an accepted order stays in Under Review
	// before it is promoted to Underway automatically.
	ReviewDelay time.Duration
	// SweepInterval is how often the review job scans for orders whose
	// review window elapsed while the process was down.
	SweepInterval time.Duration
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Orders: OrdersConfig{
			ReviewDelay:   time.Duration(getEnvAsInt("ORDER_REVIEW_DELAY_MINUTES", 15)) * time.Minute,
			SweepInterval: time.Duration(getEnvAsInt("ORDER_SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
