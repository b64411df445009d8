// ABOUTME: Search handlers for the Huma API
// ABOUTME: Exposes ranked repository search over the upstream code-hosting API

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"repo-search-api/api/dto/mappers"
	"repo-search-api/api/dto/requests"
	"repo-search-api/api/dto/responses"
	"repo-search-api/core/domain"
	"repo-search-api/core/interfaces"
)

// SearchService interface defines the methods needed from the search service
type SearchService interface {
	SearchRepositories(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RepositoryResult, error)
	Now() time.Time
}

// SearchHandler handles repository search requests
type SearchHandler struct {
	searchService SearchService
	logger        interfaces.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService SearchService, logger interfaces.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// RegisterRoutes registers all search-related routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchRepositories",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search repositories",
		Description: "Aggregates up to maxPages pages of upstream repository search results and ranks them by popularity",
		Tags:        []string{"Search"},
	}, h.SearchRepositories)
}

// SearchInput defines the input for the SearchRepositories operation
type SearchInput struct {
	requests.SearchRequest
}

// SearchOutput defines the output for the SearchRepositories operation
type SearchOutput struct {
	Body []responses.RepositoryResponse
}

// SearchRepositories handles the GET /api/search endpoint
func (h *SearchHandler) SearchRepositories(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	criteria, err := input.ToCriteria(h.searchService.Now())
	if err != nil {
		return nil, toHumaError(err)
	}

	results, err := h.searchService.SearchRepositories(ctx, criteria)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("Repository search failed", map[string]interface{}{
				"keywords": criteria.Keywords,
				"error":    err.Error(),
			})
		}
		return nil, toHumaError(err)
	}

	return &SearchOutput{Body: mappers.ToRepositoryResponses(results)}, nil
}
