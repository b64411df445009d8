// ABOUTME: Configuration options for the repository search client
// ABOUTME: Provides functional options pattern for flexible client configuration

package reposearch

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"repo-search-api/core/interfaces"
)

// DefaultBaseURL is the proxy address used when none is configured
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout bounds one search call
const DefaultTimeout = 2 * time.Minute

// Config holds the configuration for the client
type Config struct {
	BaseURL    string
	HTTPClient interfaces.HTTPClient
	Timeout    time.Duration
	Logger     interfaces.Logger
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithBaseURL sets the proxy root, e.g. "http://localhost:8000"
func WithBaseURL(baseURL string) Option {
	return func(c *Config) error {
		u, err := url.Parse(strings.TrimSpace(baseURL))
		if err != nil {
			return err
		}
		if u.Scheme == "" || u.Host == "" {
			return errors.New("base url must be absolute")
		}
		c.BaseURL = strings.TrimRight(u.String(), "/")
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		if client == nil {
			return errors.New("http client must not be nil")
		}
		c.HTTPClient = client
		return nil
	}
}

// WithTimeout bounds each search call; zero disables the bound
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return errors.New("timeout must not be negative")
		}
		c.Timeout = timeout
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func defaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}
