// ABOUTME: Logging round tripper for outgoing HTTP calls
// ABOUTME: Records method, redacted URL, status and latency without leaking credentials

package standard

import (
	"net/http"
	"time"

	"repo-search-api/core/interfaces"
)

// LoggingRoundTripper logs every request passing through it at debug level.
// Failed round trips are logged as warnings.
type LoggingRoundTripper struct {
	next   http.RoundTripper
	logger interfaces.Logger
}

// NewLoggingRoundTripper wraps next; nil uses http.DefaultTransport
func NewLoggingRoundTripper(next http.RoundTripper, logger interfaces.Logger) *LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingRoundTripper{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if t.logger == nil {
		return resp, err
	}

	fields := map[string]interface{}{
		"method":      req.Method,
		"url":         redactURL(req),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if req.Header.Get("Authorization") != "" {
		fields["authorization"] = "[REDACTED]"
	}

	if err != nil {
		fields["error"] = err.Error()
		t.logger.Warn("Outgoing request failed", fields)
		return resp, err
	}

	fields["status"] = resp.StatusCode
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		fields["rate_limit_remaining"] = remaining
	}
	t.logger.Debug("Outgoing request", fields)
	return resp, err
}

func redactURL(req *http.Request) string {
	u := *req.URL
	if u.User != nil {
		u.User = nil
	}
	q := u.Query()
	for _, key := range []string{"access_token", "token", "client_secret"} {
		if q.Has(key) {
			q.Set(key, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
