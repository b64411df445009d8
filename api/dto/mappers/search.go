// ABOUTME: Mappers for converting ranked search results to API DTOs
// ABOUTME: Formats creation dates as ISO calendar dates

package mappers

import (
	"repo-search-api/api/dto/responses"
	"repo-search-api/core/domain"
)

// ToRepositoryResponse converts a ranked result to its DTO
func ToRepositoryResponse(result domain.RepositoryResult) responses.RepositoryResponse {
	resp := responses.RepositoryResponse{
		Name:            result.Name,
		URL:             result.URL,
		Language:        result.Language,
		Stars:           result.Stars,
		Forks:           result.Forks,
		Recency:         result.Recency,
		PopularityScore: result.PopularityScore,
	}
	if result.Created != nil {
		resp.Created = result.Created.Format(domain.DateLayout)
	}
	return resp
}

// ToRepositoryResponses converts results keeping their order; the result is never nil
func ToRepositoryResponses(results []domain.RepositoryResult) []responses.RepositoryResponse {
	out := make([]responses.RepositoryResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToRepositoryResponse(r))
	}
	return out
}
