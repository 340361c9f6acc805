package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// NAV source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// NAV source: "file" (NAVDir) or "postgres" (Database)
	NAVSource string
	NAVDir    string

	// Database (read-only NAV source)
	Database DatabaseConfig

	// Redis (caller-side series cache)
	Redis RedisConfig

	// API
	API APIConfig

	// Report settings file (YAML); empty means built-in defaults
	ReportConfigPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	TTL      time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// APIConfig holds HTTP API limits
type APIConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// NAV source
		NAVSource: getEnv("NAV_SOURCE", SourceFile),
		NAVDir:    getEnv("NAV_DIR", "data"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			TTL:      getEnvAsDuration("REDIS_TTL", "24h"),
		},

		// API
		API: APIConfig{
			RateLimitRPS:   getEnvAsFloat("API_RATE_LIMIT_RPS", 20),
			RateLimitBurst: getEnvAsInt("API_RATE_LIMIT_BURST", 40),
			RequestTimeout: getEnvAsDuration("API_REQUEST_TIMEOUT", "15s"),
		},

		ReportConfigPath: getEnv("REPORT_CONFIG", ""),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.NAVSource {
	case SourceFile:
		if c.NAVDir == "" {
			return fmt.Errorf("NAV_DIR is required when NAV_SOURCE=%s", SourceFile)
		}
	case SourcePostgres:
		// Database URL is required only for the postgres source
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when NAV_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("NAV_SOURCE must be one of: %s, %s", SourceFile, SourcePostgres)
	}

	if c.API.RateLimitRPS <= 0 || c.API.RateLimitBurst <= 0 {
		return fmt.Errorf("API_RATE_LIMIT_RPS and API_RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
