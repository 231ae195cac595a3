package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	StoreBaseURL   string
	StoreTimeout   time.Duration
	Port           string
	InitialBalance float64
	SavingsKeyword string
	SessionTTL     time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		StoreBaseURL:   getEnv("STORE_BASE_URL", "https://mbms-backend.onrender.com/api"),
		StoreTimeout:   time.Duration(getEnvAsInt("STORE_TIMEOUT_SECONDS", 30)) * time.Second,
		Port:           getEnv("PORT", "8080"),
		InitialBalance: getEnvAsFloat("INITIAL_BALANCE", 0),
		SavingsKeyword: getEnv("SAVINGS_KEYWORD", "Savings"),
		SessionTTL:     time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 720)) * time.Minute,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
