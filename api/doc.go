// Package api provides the HTTP API layer for the repository search service.
// It uses the Huma framework for OpenAPI documentation, query parameter
// binding and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration, middleware stack and page mount
// - handlers/: HTTP request handlers for search and health
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: Request logging and per-IP rate limiting
//
// # OpenAPI
//
// - JSON spec available at /openapi.json
// - Interactive docs at /docs
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//
//	handlers.NewSearchHandler(searchService, logger).RegisterRoutes(humaAPI)
//	handlers.NewHealthHandler().RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Every error response has the same shape:
//
//	{"error": "Search keywords must be 1 to 50 characters long"}
//
// Validation failures are 400. Upstream rate limiting is 429, other upstream
// failures are 502, 503 or 504, and anything unexpected is 500.
package api
