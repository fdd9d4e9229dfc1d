package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string

	ServerHost  string
	ServerPort  string
	Environment string

	JWTSecret string
	TokenTTL  time.Duration

	BcryptCost int

	RedisURL          string
	RateLimitEnabled  bool
	RateLimitAttempts int
	RateLimitWindow   time.Duration

	LogLevel  string
	LogFormat string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrInvalidTokenTTL    = errors.New("invalid token TTL format")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ServerHost:        getEnvOrDefault("SERVER_HOST", "localhost"),
		ServerPort:        getEnvOrDefault("SERVER_PORT", "8080"),
		Environment:       getEnvOrDefault("ENV", "development"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		BcryptCost:        getEnvOrDefaultInt("BCRYPT_COST", 10),
		RedisURL:          getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled:  getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitAttempts: getEnvOrDefaultInt("RATE_LIMIT_ATTEMPTS", 5),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         getEnvOrDefault("LOG_FORMAT", "json"),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	// Token TTL in seconds, default 7 days
	tokenTTL, err := parseSeconds(getEnvOrDefault("TOKEN_TTL", "604800"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.TokenTTL = tokenTTL

	window, err := parseSeconds(getEnvOrDefault("RATE_LIMIT_WINDOW", "900"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitWindow = window

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func parseSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}
