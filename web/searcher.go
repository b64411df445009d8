// ABOUTME: In-process searcher that calls the search service without HTTP
// ABOUTME: Translates service failures into proxy-shaped client errors

package web

import (
	"context"
	"strconv"
	"time"

	"repo-search-api/core/domain"
	coreerrors "repo-search-api/core/errors"
	"repo-search-api/core/search"
	"repo-search-api/reposearch"
)

// SearchService is the part of the search service the page needs
type SearchService interface {
	SearchRepositories(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RepositoryResult, error)
	Now() time.Time
}

// ServiceSearcher runs searches directly against a SearchService
type ServiceSearcher struct {
	service SearchService
}

// NewServiceSearcher wraps a search service
func NewServiceSearcher(service SearchService) *ServiceSearcher {
	return &ServiceSearcher{service: service}
}

// Search validates and runs the search, answering errors the way the proxy would
func (s *ServiceSearcher) Search(ctx context.Context, criteria reposearch.Criteria) ([]reposearch.Repository, error) {
	maxPages := ""
	if criteria.MaxPages != 0 {
		maxPages = strconv.Itoa(criteria.MaxPages)
	}

	parsed, err := search.ParseCriteria(criteria.Keywords, criteria.Language, criteria.EarliestCreatedDate, maxPages, s.service.Now())
	if err != nil {
		return nil, proxyError(err)
	}

	results, err := s.service.SearchRepositories(ctx, parsed)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, proxyError(err)
	}

	repos := make([]reposearch.Repository, 0, len(results))
	for _, r := range results {
		repo := reposearch.Repository{
			Name:            r.Name,
			URL:             r.URL,
			Language:        r.Language,
			Stars:           r.Stars,
			Forks:           r.Forks,
			Recency:         r.Recency,
			PopularityScore: r.PopularityScore,
		}
		if r.Created != nil {
			repo.Created = r.Created.Format(domain.DateLayout)
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

func proxyError(err error) *reposearch.Error {
	return &reposearch.Error{
		StatusCode: coreerrors.HTTPStatus(err),
		Message:    coreerrors.PublicMessage(err),
	}
}
