package web

import (
	"context"
	"sync"
	"time"

	"repo-search-api/core/domain"
	"repo-search-api/reposearch"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

// mockSearcher is a mock implementation of Searcher
type mockSearcher struct {
	mu         sync.Mutex
	calls      []reposearch.Criteria
	searchFunc func(ctx context.Context, criteria reposearch.Criteria) ([]reposearch.Repository, error)
}

func (m *mockSearcher) Search(ctx context.Context, criteria reposearch.Criteria) ([]reposearch.Repository, error) {
	m.mu.Lock()
	m.calls = append(m.calls, criteria)
	m.mu.Unlock()

	if m.searchFunc != nil {
		return m.searchFunc(ctx, criteria)
	}
	return []reposearch.Repository{}, nil
}

func (m *mockSearcher) recorded() []reposearch.Criteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]reposearch.Criteria(nil), m.calls...)
}

// mockSearchService is a mock implementation of SearchService
type mockSearchService struct {
	searchFunc func(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RepositoryResult, error)
}

func (m *mockSearchService) SearchRepositories(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RepositoryResult, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, criteria)
	}
	return []domain.RepositoryResult{}, nil
}

func (m *mockSearchService) Now() time.Time {
	return fixedNow
}

// stateRecorder collects every transition an observer sees
type stateRecorder struct {
	mu     sync.Mutex
	states []State
}

func (r *stateRecorder) observe(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.states))
	for _, s := range r.states {
		names = append(names, s.Name())
	}
	return names
}

func sixRepositories() []reposearch.Repository {
	return []reposearch.Repository{
		{Name: "angular", URL: "https://github.com/angular/angular", Language: "TypeScript", Created: "2014-09-18", Stars: 95000, Forks: 25000, Recency: "12 years ago", PopularityScore: 10},
		{Name: "angular.js", URL: "https://github.com/angular/angular.js", Language: "JavaScript", Created: "2010-01-06", Stars: 59000, Forks: 27000, Recency: "16 years ago", PopularityScore: 9.2},
		{Name: "components", URL: "https://github.com/angular/components", Language: "TypeScript", Stars: 24000, Forks: 6700, Recency: "Unknown", PopularityScore: 2.6},
		{Name: "angular-cli", URL: "https://github.com/angular/angular-cli", Language: "TypeScript", Stars: 26000, Forks: 12000, Recency: "10 years ago", PopularityScore: 4.4},
		{Name: "ng-book", URL: "https://github.com/x/ng-book", Stars: 50, Forks: 10, Recency: "2 months ago", PopularityScore: 0.1},
		{Name: "tiny-ng", URL: "https://github.com/x/tiny-ng", Stars: 1, Forks: 0, Recency: "Today", PopularityScore: 0},
	}
}
