// ABOUTME: Error types returned by the repository search client
// ABOUTME: Carries the proxy status code and its error message when present

package reposearch

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned when the proxy answers with a non-2xx status
type Error struct {
	// StatusCode is the HTTP status of the proxy response
	StatusCode int

	// Message is the "error" field of the response body; empty when the body had none
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("search proxy returned %d", e.StatusCode)
	}
	return fmt.Sprintf("search proxy returned %d: %s", e.StatusCode, e.Message)
}

// IsValidationError reports whether the proxy rejected the criteria
func IsValidationError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusBadRequest
}

// IsRateLimited reports whether the proxy or upstream refused the call because of quota
func IsRateLimited(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusTooManyRequests
}

// ErrorMessage returns the proxy-provided message of err, or "" when it has none
func ErrorMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
