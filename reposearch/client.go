// ABOUTME: Client for the repository search proxy
// ABOUTME: Encodes criteria as query parameters and decodes ranked results

package reposearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"repo-search-api/core/interfaces"
	"repo-search-api/infrastructure/http/standard"
)

const searchPath = "/api/search"

// maxErrorBody caps how much of a failed response is read
const maxErrorBody = 64 << 10

// Client calls the search proxy over HTTP
type Client struct {
	config Config
}

// NewClient creates a new search client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, fmt.Errorf("invalid client option: %w", err)
		}
	}

	if config.HTTPClient == nil {
		config.HTTPClient = standard.NewStandardHTTPClient(0)
	}

	return &Client{config: config}, nil
}

// SearchURL returns the request URL for criteria
func (c *Client) SearchURL(criteria Criteria) string {
	return c.config.BaseURL + searchPath + "?" + EncodeCriteria(criteria).Encode()
}

// EncodeCriteria builds the proxy query string, leaving out empty values
func EncodeCriteria(criteria Criteria) url.Values {
	q := url.Values{}
	if criteria.Keywords != "" {
		q.Set("keywords", criteria.Keywords)
	}
	if criteria.Language != "" {
		q.Set("language", criteria.Language)
	}
	if criteria.EarliestCreatedDate != "" {
		q.Set("earliestCreatedDate", criteria.EarliestCreatedDate)
	}
	if criteria.MaxPages != 0 {
		q.Set("maxPages", strconv.Itoa(criteria.MaxPages))
	}
	return q
}

// Search runs one search. A non-2xx answer is returned as *Error.
func (c *Client) Search(ctx context.Context, criteria Criteria) ([]Repository, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	target := c.SearchURL(criteria)
	c.log().Debug("Searching repositories", map[string]interface{}{
		"url": target,
	})

	resp, err := c.config.HTTPClient.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode(), Message: errorMessage(body)}
		c.log().Warn("Search proxy returned an error", map[string]interface{}{
			"status": apiErr.StatusCode,
			"error":  apiErr.Message,
		})
		return nil, apiErr
	}

	var repos []Repository
	if err := json.NewDecoder(body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if repos == nil {
		repos = []Repository{}
	}
	return repos, nil
}

// errorMessage extracts the "error" string of a JSON body
func errorMessage(body io.Reader) string {
	var payload struct {
		Error interface{} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&payload); err != nil {
		return ""
	}
	msg, _ := payload.Error.(string)
	return msg
}

func (c *Client) log() interfaces.Logger {
	if c.config.Logger == nil {
		return nopLogger{}
	}
	return c.config.Logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
