// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, middleware and the browser page mount

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"repo-search-api/api/middleware"
	"repo-search-api/core/interfaces"
	"repo-search-api/pkg/featureflags"
)

const (
	apiTitle       = "Repository Search API"
	apiVersion     = "1.0.0"
	apiDescription = "Searches code-hosting repositories and ranks them by popularity and recency"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger         interfaces.Logger
	RateLimit      int           // requests per window
	RateWindow     time.Duration // rate limit window
	AllowedOrigins []string

	// Limiter replaces the limiter built from RateLimit and RateWindow
	Limiter *middleware.RateLimiter

	// Flags gates optional surfaces; nil uses the defaults
	Flags featureflags.Manager

	// Page is served at / when the web UI flag is on
	Page http.Handler
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	ctx := context.Background()
	flags := cfg.Flags
	if flags == nil {
		flags = featureflags.FromContext(ctx)
	}

	router := chi.NewRouter()

	// CORS goes first so preflight requests are never rate limited
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Window"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		limiter := cfg.Limiter
		if limiter == nil && cfg.RateLimit > 0 && cfg.RateWindow > 0 {
			limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		}
		if limiter != nil {
			router.Use(middleware.RateLimitMiddleware(limiter))
		}
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = apiDescription
	// Plain JSON bodies without $schema links
	config.CreateHooks = nil

	api := humachi.New(router, config)

	// The OpenAPI spec is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs

	if cfg.Page != nil && flags.IsEnabled(ctx, featureflags.WebUIEnabled) {
		router.Method(http.MethodGet, "/", cfg.Page)
		router.Method(http.MethodHead, "/", cfg.Page)
	}

	return api, router
}
