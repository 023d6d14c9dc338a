package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr             string
	DatabaseURL      string
	JWTSecret        string
	FrontendDir      string
	Environment      string
	RunMigrations    bool
	RunSeed          bool
	DBConnectRetries int
	DBConnectBackoff time.Duration
}

func Load() Config {
	return Config{
		Addr:             getEnv("APP_ADDR", ":8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		FrontendDir:      getEnv("FRONTEND_DIR", "frontend/dist"),
		Environment:      getEnv("APP_ENV", "development"),
		RunMigrations:    getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:          getEnvBool("RUN_SEED", true),
		DBConnectRetries: getEnvInt("DB_CONNECT_RETRIES", 10),
		DBConnectBackoff: getEnvDuration("DB_CONNECT_BACKOFF", 2*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.DBConnectRetries < 1 {
		return fmt.Errorf("DB_CONNECT_RETRIES must be at least 1")
	}
	return nil
}
