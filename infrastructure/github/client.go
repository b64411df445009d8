// ABOUTME: GitHub repository search client implementing the upstream searcher interface
// ABOUTME: Retries timed out attempts and maps API failures to core error types

package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"repo-search-api/core/domain"
	coreerrors "repo-search-api/core/errors"
	"repo-search-api/core/interfaces"
)

// APIName identifies this upstream in errors and logs
const APIName = "github"

// Config holds client configuration
type Config struct {
	// Token is the optional API credential
	Token string

	// BaseURL overrides the REST API root (used for tests and enterprise hosts)
	BaseURL string

	// MaxRetries is the total number of attempts made when attempts time out
	MaxRetries int

	// AttemptTimeout bounds a single attempt
	AttemptTimeout time.Duration

	// Backoff is the delay before the second attempt; it doubles after each timeout
	Backoff time.Duration

	// Transport is the base round tripper; nil uses http.DefaultTransport
	Transport http.RoundTripper
}

// DefaultConfig returns the production configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		AttemptTimeout: 30 * time.Second,
		Backoff:        100 * time.Millisecond,
	}
}

// Client searches repositories through the GitHub REST API
type Client struct {
	gh     *github.Client
	config Config
	logger interfaces.Logger
}

// NewClient creates a search client
func NewClient(cfg Config, logger interfaces.Logger) (*Client, error) {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = DefaultConfig().AttemptTimeout
	}

	base := &http.Client{Transport: cfg.Transport}
	if base.Transport == nil {
		base.Transport = http.DefaultTransport
	}

	httpClient := base
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.WithValue(context.Background(), oauth2.HTTPClient, base), ts)
	}

	gh := github.NewClient(httpClient)
	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url %q: %w", cfg.BaseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{gh: gh, config: cfg, logger: logger}, nil
}

// SearchRepositories runs one paginated search.
// Only timed out attempts are retried; every other failure is returned immediately.
func (c *Client) SearchRepositories(ctx context.Context, q domain.UpstreamQuery) (*domain.UpstreamPage, error) {
	opts := &github.SearchOptions{
		Sort:  q.Sort,
		Order: q.Order,
		ListOptions: github.ListOptions{
			Page:    q.Page,
			PerPage: q.PerPage,
		},
	}

	backoff := c.config.Backoff
	var lastErr error
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		page, err := c.attempt(ctx, q.Query, opts)
		if err == nil {
			return page, nil
		}

		// The caller gave up; do not retry on its behalf
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if !isTimeout(err) {
			return nil, c.mapError(err)
		}

		lastErr = err
		c.log().Warn("Upstream search attempt timed out", map[string]interface{}{
			"query":   q.Query,
			"page":    q.Page,
			"attempt": attempt,
		})

		if attempt < c.config.MaxRetries && backoff > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}
	}

	return nil, &coreerrors.TimeoutError{API: APIName, Attempts: c.config.MaxRetries, Err: lastErr}
}

func (c *Client) attempt(ctx context.Context, query string, opts *github.SearchOptions) (*domain.UpstreamPage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.AttemptTimeout)
	defer cancel()

	result, resp, err := c.gh.Search.Repositories(attemptCtx, query, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			// Pages beyond the upstream result window are refused with 422
			c.log().Debug("Upstream refused page, treating as empty", map[string]interface{}{
				"query": query,
				"page":  opts.Page,
			})
			return &domain.UpstreamPage{Items: []domain.UpstreamRepository{}}, nil
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, errAttemptTimeout
		}
		return nil, err
	}

	return toPage(result), nil
}

var errAttemptTimeout = errors.New("attempt timed out")

func isTimeout(err error) bool {
	if errors.Is(err, errAttemptTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *Client) mapError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &coreerrors.ExternalAPIError{
			StatusCode:  statusOf(rateErr.Response, http.StatusForbidden),
			Message:     rateErr.Message,
			API:         APIName,
			RateLimited: true,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &coreerrors.ExternalAPIError{
			StatusCode:  statusOf(abuseErr.Response, http.StatusForbidden),
			Message:     abuseErr.Message,
			API:         APIName,
			RateLimited: true,
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		status := statusOf(respErr.Response, http.StatusBadGateway)
		return &coreerrors.ExternalAPIError{
			StatusCode:  status,
			Message:     respErr.Message,
			API:         APIName,
			RateLimited: status == http.StatusTooManyRequests,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &coreerrors.TransportError{API: APIName, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &coreerrors.TransportError{API: APIName, Err: err}
	}

	return fmt.Errorf("github search: %w", err)
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}

func toPage(result *github.RepositoriesSearchResult) *domain.UpstreamPage {
	page := &domain.UpstreamPage{
		TotalCount:        result.GetTotal(),
		IncompleteResults: result.GetIncompleteResults(),
		Items:             make([]domain.UpstreamRepository, 0, len(result.Repositories)),
	}

	for _, r := range result.Repositories {
		if r == nil {
			continue
		}
		page.Items = append(page.Items, domain.UpstreamRepository{
			ID:        r.GetID(),
			Name:      r.GetName(),
			FullName:  r.GetFullName(),
			HTMLURL:   r.GetHTMLURL(),
			Stars:     r.GetStargazersCount(),
			Forks:     r.GetForksCount(),
			Language:  r.GetLanguage(),
			CreatedAt: timestamp(r.CreatedAt),
			UpdatedAt: timestamp(r.UpdatedAt),
		})
	}

	return page
}

func timestamp(ts *github.Timestamp) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.UTC()
	return &t
}

func (c *Client) log() interfaces.Logger {
	if c.logger == nil {
		return nopLogger{}
	}
	return c.logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
