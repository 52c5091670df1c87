package config

import (
	"log/slog"
	"os"
	"time"
)

// Config holds process-wide settings. Loaded once at startup and
// treated as read-only for the process lifetime.
type Config struct {
	Port        string
	Env         string
	DatabaseDSN string

	JWTSecret   string
	JWTTTL      time.Duration
	JWTAudience string
	JWTIssuer   string
}

const devSecret = "dev-secret-change-in-production"

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "file:stockroom.db"),
		JWTSecret:   getEnv("JWT_SECRET", devSecret),
		JWTTTL:      getDurationEnv("JWT_TTL", 24*time.Hour),
		JWTAudience: getEnv("JWT_AUDIENCE", "stockroom-api"),
		JWTIssuer:   getEnv("JWT_ISSUER", "stockroom"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == devSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration value, using fallback", "key", key, "value", v)
		return fallback
	}
	return d
}
