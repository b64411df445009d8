package handlers

import (
	"context"
	"sync"
	"time"

	"repo-search-api/core/domain"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

// mockSearchService is a mock implementation of the search service
type mockSearchService struct {
	mu         sync.Mutex
	calls      []domain.SearchCriteria
	searchFunc func(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RepositoryResult, error)
}

func (m *mockSearchService) SearchRepositories(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RepositoryResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, criteria)
	m.mu.Unlock()

	if m.searchFunc != nil {
		return m.searchFunc(ctx, criteria)
	}
	return []domain.RepositoryResult{}, nil
}

func (m *mockSearchService) Now() time.Time {
	return fixedNow
}

func (m *mockSearchService) recorded() []domain.SearchCriteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SearchCriteria(nil), m.calls...)
}
