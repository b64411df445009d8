// ABOUTME: Request DTOs for the repository search endpoint
// ABOUTME: Query parameters stay raw strings so validation can report every problem

package requests

import (
	"time"

	"repo-search-api/core/domain"
	"repo-search-api/core/search"
)

// SearchRequest holds the query parameters of GET /api/search
type SearchRequest struct {
	// Keywords is the free-text search
	Keywords string `query:"keywords" doc:"Search keywords (1 to 50 characters)" example:"angular"`

	// Language filters by a single programming language
	Language string `query:"language" doc:"Programming language filter, a single word" example:"TypeScript"`

	// EarliestCreatedDate is the inclusive creation date bound
	EarliestCreatedDate string `query:"earliestCreatedDate" doc:"Only repositories created on or after this date (YYYY-MM-DD, in the past)" example:"2020-01-01"`

	// MaxPages is the number of upstream pages to aggregate
	MaxPages string `query:"maxPages" doc:"Number of result pages of 100 repositories to aggregate (1 to 5, default 5)" example:"2"`
}

// ToCriteria validates the raw parameters against now and builds search criteria
func (r *SearchRequest) ToCriteria(now time.Time) (domain.SearchCriteria, error) {
	return search.ParseCriteria(r.Keywords, r.Language, r.EarliestCreatedDate, r.MaxPages, now)
}
