package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds everything the API server reads from the
// environment. A .env file in the working directory is honored when
// present; real environment variables win over it.
type ServerConfig struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	GinMode     string
}

// LoadServerConfig reads the server configuration from the environment.
func LoadServerConfig() (*ServerConfig, error) {
	// Best effort; absence of a .env file is normal in production.
	_ = godotenv.Load()

	cfg := &ServerConfig{
		Port:        getEnv("API_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		TokenTTL:    24 * time.Hour,
	}

	if hours := os.Getenv("TOKEN_TTL_HOURS"); hours != "" {
		n, err := strconv.Atoi(hours)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer, got %q", hours)
		}
		cfg.TokenTTL = time.Duration(n) * time.Hour
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
