// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, upstream, cache, rate limit and UI settings

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backend names
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
	CacheNone   = "none"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Log contains logger configuration
	Log LogConfig

	// GitHub contains upstream search API configuration
	GitHub GitHubConfig

	// Search contains aggregation defaults
	Search SearchConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// RateLimit contains per-client API rate limiting
	RateLimit RateLimitConfig

	// UI contains browser page configuration
	UI UIConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// AllowedOrigins lists CORS origins; "*" allows any
	AllowedOrigins []string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string

	// File enables a rotating log file instead of stdout
	File string

	// MaxSizeMB is the rotation size of File
	MaxSizeMB int
}

// GitHubConfig holds upstream search API configuration
type GitHubConfig struct {
	// Token is the optional API credential
	Token string

	// APIURL is the base URL of the REST API
	APIURL string

	// PerPage is the result page size
	PerPage int

	// MaxRetries bounds attempts on timeouts
	MaxRetries int

	// AttemptTimeout bounds a single upstream attempt
	AttemptTimeout time.Duration

	// PacingInterval separates the sequential normalization calls
	PacingInterval time.Duration
}

// SearchConfig holds aggregation defaults
type SearchConfig struct {
	DefaultPages int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite/none)
	Type string

	// TTL is how long ranked results stay cached
	TTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	// Requests is the number of requests allowed per Window
	Requests int

	// Window is the refill period
	Window time.Duration
}

// UIConfig holds browser page configuration
type UIConfig struct {
	// ProxyURL points the page at a remote proxy; empty searches in-process
	ProxyURL string

	// RequestTimeout bounds one search issued by the page
	RequestTimeout time.Duration
}

// LoadDotEnv loads variables from .env files without overriding ones already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8000"),
			AllowedOrigins: getEnvAsListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:     getEnvOrDefault("LOG_LEVEL", "info"),
			Format:    getEnvOrDefault("LOG_FORMAT", "text"),
			File:      os.Getenv("LOG_FILE"),
			MaxSizeMB: getEnvAsIntOrDefault("LOG_MAX_SIZE_MB", 100),
		},
		GitHub: GitHubConfig{
			Token:          os.Getenv("GITHUB_TOKEN"),
			APIURL:         getEnvOrDefault("GITHUB_API_URL", "https://api.github.com/"),
			PerPage:        getEnvAsIntOrDefault("GITHUB_PER_PAGE", 100),
			MaxRetries:     getEnvAsIntOrDefault("GITHUB_MAX_RETRIES", 3),
			AttemptTimeout: getEnvAsDurationOrDefault("GITHUB_ATTEMPT_TIMEOUT", 30*time.Second),
			PacingInterval: getEnvAsDurationOrDefault("GITHUB_PACING_INTERVAL", 50*time.Millisecond),
		},
		Search: SearchConfig{
			DefaultPages: getEnvAsIntOrDefault("SEARCH_DEFAULT_PAGES", 5),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(getEnvOrDefault("CACHE_TYPE", CacheMemory)),
			TTL:  getEnvAsDurationOrDefault("CACHE_TTL", 5*time.Minute),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "reposearch-cache.db"),
			},
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsIntOrDefault("RATE_LIMIT", 60),
			Window:   getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute),
		},
		UI: UIConfig{
			ProxyURL:       os.Getenv("UI_PROXY_URL"),
			RequestTimeout: getEnvAsDurationOrDefault("UI_REQUEST_TIMEOUT", 2*time.Minute),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns the environment variable as a duration or a default
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.GitHub.APIURL == "" {
		return errors.New("github api url cannot be empty")
	}

	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > 100 {
		return errors.New("github per page must be between 1 and 100")
	}

	if c.GitHub.MaxRetries < 1 {
		return errors.New("github max retries must be at least 1")
	}

	if c.GitHub.AttemptTimeout <= 0 {
		return errors.New("github attempt timeout must be positive")
	}

	if c.Search.DefaultPages < 1 || c.Search.DefaultPages > 5 {
		return errors.New("default pages must be between 1 and 5")
	}

	switch c.Cache.Type {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case CacheSQLite:
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis', 'sqlite' or 'none'")
	}

	if c.RateLimit.Requests < 1 {
		return errors.New("rate limit must be at least 1 request")
	}

	if c.RateLimit.Window <= 0 {
		return errors.New("rate window must be positive")
	}

	if c.UI.RequestTimeout <= 0 {
		return errors.New("ui request timeout must be positive")
	}

	return nil
}
