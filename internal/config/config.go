// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	JWTSecretKey string
	DatabasePath string
	Environment  string

	// Rate limiting for write endpoints
	RateLimitWindowMinutes int
	RateLimitMaxAttempts   int
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	return &Config{
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		JWTSecretKey:           getEnv("JWT_SECRET_KEY", ""),
		DatabasePath:           getEnv("DATABASE_PATH", "draftmail.db"),
		Environment:            env,
		RateLimitWindowMinutes: getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 1),
		RateLimitMaxAttempts:   getEnvAsInt("RATE_LIMIT_MAX_ATTEMPTS", 60),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
