package search

import (
	"context"
	"sync"
	"time"

	"repo-search-api/core/domain"
)

// mockUpstream is a mock implementation of the RepositorySearcher interface
type mockUpstream struct {
	mu         sync.Mutex
	calls      []domain.UpstreamQuery
	searchFunc func(ctx context.Context, query domain.UpstreamQuery) (*domain.UpstreamPage, error)
}

func (m *mockUpstream) SearchRepositories(ctx context.Context, query domain.UpstreamQuery) (*domain.UpstreamPage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()

	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return &domain.UpstreamPage{}, nil
}

func (m *mockUpstream) recorded() []domain.UpstreamQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.UpstreamQuery, len(m.calls))
	copy(out, m.calls)
	return out
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) record(msg string) {
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.record(msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.record(msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.record(msg) }
