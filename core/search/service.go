// ABOUTME: Search service aggregates paginated upstream repository searches
// ABOUTME: Provides business logic for repository search independent of HTTP layer

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"repo-search-api/core/domain"
	"repo-search-api/core/interfaces"
	"repo-search-api/core/scoring"
)

// Upstream sort keys and directions
const (
	sortStars = "stars"
	sortForks = "forks"
	orderAsc  = "asc"
	orderDesc = "desc"
)

// Options tunes how the service talks to the upstream API
type Options struct {
	// PerPage is the upstream page size for result pages
	PerPage int

	// DefaultPages is used when criteria do not specify a page count
	DefaultPages int

	// PacingInterval separates the sequential normalization calls
	PacingInterval time.Duration

	// CacheTTL is how long a ranked result list stays cached; 0 disables caching
	CacheTTL time.Duration
}

// DefaultOptions returns the options used in production
func DefaultOptions() Options {
	return Options{
		PerPage:        100,
		DefaultPages:   MaxPages,
		PacingInterval: 50 * time.Millisecond,
		CacheTTL:       5 * time.Minute,
	}
}

// SearchService handles repository search operations
type SearchService struct {
	deps    interfaces.Dependencies
	scorer  *scoring.ScoringService
	options Options
	now     func() time.Time
}

// Option configures a SearchService
type Option func(*SearchService)

// WithOptions replaces the default tuning options
func WithOptions(opts Options) Option {
	return func(s *SearchService) {
		s.options = opts
	}
}

// WithScorer replaces the default scoring service
func WithScorer(scorer *scoring.ScoringService) Option {
	return func(s *SearchService) {
		s.scorer = scorer
	}
}

// WithClock overrides the clock used for date validation
func WithClock(now func() time.Time) Option {
	return func(s *SearchService) {
		s.now = now
	}
}

// NewSearchService creates a new search service instance
func NewSearchService(deps interfaces.Dependencies, opts ...Option) *SearchService {
	s := &SearchService{
		deps:    deps,
		options: DefaultOptions(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScoringService(scoring.WithClock(s.now))
	}
	return s
}

// Now returns the service clock reading
func (s *SearchService) Now() time.Time {
	return s.now()
}

// SearchRepositories validates the criteria, aggregates upstream pages and returns ranked results.
// Any upstream failure fails the whole search; partial result lists are never returned.
func (s *SearchService) SearchRepositories(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RepositoryResult, error) {
	if err := Validate(criteria, s.now()); err != nil {
		return nil, err
	}

	if s.deps.Upstream == nil {
		return nil, errors.New("upstream search client not configured")
	}

	criteria = WithDefaults(criteria, s.options.DefaultPages)
	cacheKey := criteria.CacheKey()

	// Check cache first
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		s.logger().Debug("Search served from cache", map[string]interface{}{
			"key":          cacheKey,
			"repositories": len(cached),
		})
		return cached, nil
	}

	query := criteria.Query()
	s.logger().Info("Searching repositories", map[string]interface{}{
		"query":     query,
		"max_pages": criteria.MaxPages,
	})

	norm, total, err := s.fetchNormalization(ctx, query)
	if err != nil {
		return nil, err
	}

	pages := PlanPages(total, criteria.MaxPages, s.options.PerPage)
	repos, err := s.fetchPages(ctx, query, pages)
	if err != nil {
		return nil, err
	}

	for _, repo := range repos {
		if repo.Forks > norm.MaxForks {
			norm.MaxForks = repo.Forks
		}
	}

	results := s.scorer.Rank(repos, norm)

	s.logger().Info("Search completed", map[string]interface{}{
		"query":        query,
		"total_count":  total,
		"pages":        pages,
		"repositories": len(results),
		"min_stars":    norm.MinStars,
		"max_stars":    norm.MaxStars,
		"min_forks":    norm.MinForks,
		"max_forks":    norm.MaxForks,
	})

	s.toCache(ctx, cacheKey, results)
	return results, nil
}

// fetchNormalization runs the three single-item queries that bound stars and forks.
// They run sequentially and paced so bursts do not trip the upstream secondary limits.
// The total count of the first answer drives the page plan.
func (s *SearchService) fetchNormalization(ctx context.Context, query string) (domain.Normalization, int, error) {
	limiter := rate.NewLimiter(rate.Every(s.options.PacingInterval), 1)
	if s.options.PacingInterval <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	probes := []struct {
		sort, order, label string
	}{
		{sortStars, orderAsc, "min stars"},
		{sortForks, orderAsc, "min forks"},
		{sortStars, orderDesc, "max stars"},
	}

	values := make([]int, len(probes))
	total := 0
	for i, probe := range probes {
		if err := limiter.Wait(ctx); err != nil {
			return domain.Normalization{}, 0, err
		}

		page, err := s.deps.Upstream.SearchRepositories(ctx, domain.UpstreamQuery{
			Query:   query,
			Sort:    probe.sort,
			Order:   probe.order,
			Page:    1,
			PerPage: 1,
		})
		if err != nil {
			return domain.Normalization{}, 0, fmt.Errorf("fetching %s: %w", probe.label, err)
		}

		if i == 0 {
			total = page.TotalCount
		}
		if len(page.Items) == 0 {
			s.logger().Debug("No results for normalization probe", map[string]interface{}{
				"probe": probe.label,
			})
			continue
		}

		item := page.Items[0]
		if probe.sort == sortStars {
			values[i] = item.Stars
		} else {
			values[i] = item.Forks
		}
	}

	return domain.Normalization{
		MinStars: values[0],
		MinForks: values[1],
		MaxStars: values[2],
	}, total, nil
}

// fetchPages requests pages 1..count concurrently and flattens them in page order
func (s *SearchService) fetchPages(ctx context.Context, query string, count int) ([]domain.UpstreamRepository, error) {
	if count == 0 {
		return []domain.UpstreamRepository{}, nil
	}

	pages := make([][]domain.UpstreamRepository, count)
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < count; i++ {
		pageNum := i + 1
		g.Go(func() error {
			page, err := s.deps.Upstream.SearchRepositories(gctx, domain.UpstreamQuery{
				Query:   query,
				Sort:    sortForks,
				Order:   orderDesc,
				Page:    pageNum,
				PerPage: s.options.PerPage,
			})
			if err != nil {
				s.logger().Warn("Upstream page failed", map[string]interface{}{
					"page":  pageNum,
					"error": err.Error(),
				})
				return fmt.Errorf("fetching page %d: %w", pageNum, err)
			}

			items := page.Items
			if len(items) > s.options.PerPage {
				items = items[:s.options.PerPage]
			}
			pages[pageNum-1] = items

			s.logger().Debug("Fetched upstream page", map[string]interface{}{
				"page":  pageNum,
				"items": len(items),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	repos := make([]domain.UpstreamRepository, 0, count*s.options.PerPage)
	for _, items := range pages {
		repos = append(repos, items...)
	}
	return repos, nil
}

func (s *SearchService) fromCache(ctx context.Context, key string) ([]domain.RepositoryResult, bool) {
	if s.deps.Cache == nil || s.options.CacheTTL <= 0 {
		return nil, false
	}

	data, err := s.deps.Cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}

	var results []domain.RepositoryResult
	if err := json.Unmarshal(data, &results); err != nil {
		s.logger().Warn("Discarding unreadable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	return results, true
}

func (s *SearchService) toCache(ctx context.Context, key string, results []domain.RepositoryResult) {
	if s.deps.Cache == nil || s.options.CacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, key, data, s.options.CacheTTL); err != nil {
		s.logger().Warn("Failed to cache search results", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *SearchService) logger() interfaces.Logger {
	if s.deps.Logger == nil {
		return nopLogger{}
	}
	return s.deps.Logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
