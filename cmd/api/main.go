// ABOUTME: Main entry point for the repository search API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repo-search-api/api"
	"repo-search-api/api/handlers"
	"repo-search-api/api/middleware"
	"repo-search-api/core/interfaces"
	"repo-search-api/core/search"
	"repo-search-api/infrastructure/cache/memory"
	"repo-search-api/infrastructure/cache/redis"
	"repo-search-api/infrastructure/cache/sqlite"
	"repo-search-api/infrastructure/github"
	stdhttp "repo-search-api/infrastructure/http/standard"
	"repo-search-api/infrastructure/logger/structured"
	"repo-search-api/pkg/config"
	"repo-search-api/pkg/featureflags"
	"repo-search-api/reposearch"
	"repo-search-api/web"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := structured.New(structured.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	flags := featureflags.NewEnvManager("FEATURE_")
	logger.Info("Starting Repository Search API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"github_url": cfg.GitHub.APIURL,
		"has_token":  cfg.GitHub.Token != "",
		"flags":      flags.GetAllFlags(),
	})

	// Create cache
	cache, closeCache := newCache(cfg, flags, logger)
	defer closeCache()

	// Create upstream client; outgoing calls are logged with credentials redacted
	upstream, err := github.NewClient(github.Config{
		Token:          cfg.GitHub.Token,
		BaseURL:        cfg.GitHub.APIURL,
		MaxRetries:     cfg.GitHub.MaxRetries,
		AttemptTimeout: cfg.GitHub.AttemptTimeout,
		Backoff:        github.DefaultConfig().Backoff,
		Transport:      stdhttp.NewLoggingRoundTripper(http.DefaultTransport, logger),
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create upstream client: %v", err)
	}

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:    cache,
		Upstream: upstream,
		Logger:   logger,
	}

	// Create services
	cacheTTL := cfg.Cache.TTL
	if cache == nil {
		cacheTTL = 0
	}
	searchService := search.NewSearchService(deps, search.WithOptions(search.Options{
		PerPage:        cfg.GitHub.PerPage,
		DefaultPages:   cfg.Search.DefaultPages,
		PacingInterval: cfg.GitHub.PacingInterval,
		CacheTTL:       cacheTTL,
	}))

	page, err := newPage(cfg, searchService, logger)
	if err != nil {
		log.Fatalf("Failed to create search page: %v", err)
	}

	// Create API with middleware
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer limiter.Stop()

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:         logger,
		Limiter:        limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Flags:          flags,
		Page:           page,
	})

	// Create and register handlers
	handlers.NewSearchHandler(searchService, logger).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler().RegisterRoutes(humaAPI)

	// Create HTTP server; a five-page search with retries can take a while
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UI.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Server stopped", nil)
}

// newCache builds the configured cache backend. A nil cache disables result caching.
// Backends that fail to start fall back to memory.
func newCache(cfg *config.Config, flags featureflags.Manager, logger interfaces.Logger) (interfaces.Cache, func()) {
	noop := func() {}

	if !flags.IsEnabled(context.Background(), featureflags.CacheEnabled) || cfg.Cache.Type == config.CacheNone {
		logger.Info("Result caching disabled", nil)
		return nil, noop
	}

	switch cfg.Cache.Type {
	case config.CacheRedis:
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache, func() { _ = redisCache.Close() }

	case config.CacheSQLite:
		sqliteCache, err := sqlite.NewSQLiteCacheWithLogger(cfg.Cache.SQLite.Path, logger)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLite.Path,
		})
		return sqliteCache, func() { _ = sqliteCache.Close() }
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(), noop
}

// newPage builds the browser page, searching in-process unless a proxy URL is configured
func newPage(cfg *config.Config, service web.SearchService, logger interfaces.Logger) (http.Handler, error) {
	var searcher web.Searcher = web.NewServiceSearcher(service)

	if cfg.UI.ProxyURL != "" {
		client, err := reposearch.NewClient(
			reposearch.WithBaseURL(cfg.UI.ProxyURL),
			reposearch.WithTimeout(cfg.UI.RequestTimeout),
			reposearch.WithLogger(logger),
			reposearch.WithHTTPClient(stdhttp.NewStandardHTTPClient(0, stdhttp.NewLoggingRoundTripper(http.DefaultTransport, logger))),
		)
		if err != nil {
			return nil, fmt.Errorf("ui proxy client: %w", err)
		}
		searcher = client
	}

	return web.NewPageHandler(searcher, logger, web.WithRequestTimeout(cfg.UI.RequestTimeout)), nil
}
