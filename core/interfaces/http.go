package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making outgoing HTTP GET requests.
// The proxy client library and the browser page use it to reach the search proxy,
// which keeps them testable without a listening server.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	// A non-2xx status is not an error; callers inspect StatusCode.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Header names are case-insensitive.
	Header(key string) string
}
