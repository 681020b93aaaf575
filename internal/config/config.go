package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	NewRelic     NewRelicConfig
	BookingStore RemoteConfig
	QuoteService RemoteConfig
	Gateway      GatewayConfig
	Log          LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration for the verification
// journal.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	PendingTTL time.Duration
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// RemoteConfig holds the address of an HTTP collaborator.
type RemoteConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// GatewayConfig holds payment gateway configuration.
type GatewayConfig struct {
	BaseURL     string
	Token       string
	Timeout     time.Duration
	MinAmount   float64
	Currency    string
	SettleDelay time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "rental_orchestrator"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getIntEnv("REDIS_DB", 0),
			PendingTTL: getDurationEnv("PENDING_TXN_TTL", 24*time.Hour),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "rental-orchestrator"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		BookingStore: RemoteConfig{
			BaseURL: getEnv("BOOKING_STORE_URL", "http://localhost:8081"),
			Token:   getEnv("BOOKING_STORE_TOKEN", ""),
			Timeout: getDurationEnv("BOOKING_STORE_TIMEOUT", 15*time.Second),
		},
		QuoteService: RemoteConfig{
			BaseURL: getEnv("QUOTE_SERVICE_URL", "http://localhost:8082"),
			Token:   getEnv("QUOTE_SERVICE_TOKEN", ""),
			Timeout: getDurationEnv("QUOTE_SERVICE_TIMEOUT", 15*time.Second),
		},
		Gateway: GatewayConfig{
			BaseURL:     getEnv("GATEWAY_URL", "http://localhost:8083"),
			Token:       getEnv("GATEWAY_TOKEN", ""),
			Timeout:     getDurationEnv("GATEWAY_TIMEOUT", 15*time.Second),
			MinAmount:   getFloatEnv("GATEWAY_MIN_AMOUNT", 1000),
			Currency:    getEnv("GATEWAY_CURRENCY", "IRR"),
			SettleDelay: getDurationEnv("GATEWAY_SETTLE_DELAY", 2*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
