// ABOUTME: Standard HTTP client implementation with timeout support
// ABOUTME: Issues JSON GET requests to the search proxy without retrying them

package standard

import (
	"context"
	"io"
	"net/http"
	"time"

	"repo-search-api/core/interfaces"
)

const userAgent = "RepoSearch/1.0"

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// An optional round tripper replaces the default transport.
func NewStandardHTTPClient(timeout time.Duration, transport ...http.RoundTripper) *StandardHTTPClient {
	c := &http.Client{Timeout: timeout}
	if len(transport) > 0 && transport[0] != nil {
		c.Transport = transport[0]
	}
	return &StandardHTTPClient{client: c}
}

// Get performs an HTTP GET request. Failed requests are not retried.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
