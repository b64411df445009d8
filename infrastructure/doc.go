// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - github: Repository search client for the GitHub REST API
// - cache/memory: In-memory cache implementation using go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: SQLite-backed cache for single-node deployments
// - http/standard: net/http client and a logging round tripper
// - logger/structured: logrus logger with optional file rotation
//
// # Upstream Client
//
//	cfg := github.DefaultConfig()
//	cfg.Token = os.Getenv("GITHUB_TOKEN")
//	client, err := github.NewClient(cfg, logger)
//
// Timed out attempts are retried with exponential backoff. Every other
// upstream failure is returned immediately as a core error type.
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 5*time.Minute)
//	value, err := cache.Get(ctx, "key")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info"})
//	logger.Info("Searching repositories", map[string]interface{}{
//	    "query": "angular language:TypeScript",
//	})
package infrastructure
