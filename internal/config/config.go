package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	PORT string

	DB_USERNAME string
	DB_PASSWORD string
	DB_HOST     string
	DB_PORT     string
	DB_NAME     string
	DISABLE_TLS string

	// Token signing. The secret is injected into the authenticator at
	// construction; nothing else reads it.
	JWT_SECRET      string
	TOKEN_TTL_HOURS int

	// Out-of-band admin credentials for the admin-login flow.
	ADMIN_USERNAME string
	ADMIN_PASSWORD string
	ADMIN_EMAIL    string

	// Redis for distributed login rate limiting. Empty means in-memory.
	REDIS_ADDR     string
	REDIS_PASSWORD string

	// Otel
	OTEL_EXPORTER_OTLP_ENDPOINT string
}

func ReadConfig() *Config {
	tokenTTL := 24
	if ttlStr := os.Getenv("TOKEN_TTL_HOURS"); ttlStr != "" {
		if ttl, err := strconv.Atoi(ttlStr); err == nil && ttl > 0 {
			tokenTTL = ttl
		}
	}

	return &Config{
		PORT: GetEnvOrDefault("PORT", "6060"),

		DB_USERNAME: os.Getenv("DB_USERNAME"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),
		DISABLE_TLS: os.Getenv("DISABLE_TLS"),

		JWT_SECRET:      os.Getenv("JWT_SECRET"),
		TOKEN_TTL_HOURS: tokenTTL,

		ADMIN_USERNAME: GetEnvOrDefault("ADMIN_USERNAME", "admin"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
		ADMIN_EMAIL:    GetEnvOrDefault("ADMIN_EMAIL", "admin@example.com"),

		REDIS_ADDR:     os.Getenv("REDIS_ADDR"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),

		OTEL_EXPORTER_OTLP_ENDPOINT: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

// TokenTTL returns the configured token validity window.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TOKEN_TTL_HOURS) * time.Hour
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
