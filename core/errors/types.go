// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Public messages surfaced to clients for upstream failures
const (
	MsgInvalidRequest  = "Invalid search request"
	MsgRateLimited     = "Search rate limit exceeded"
	MsgUnavailable     = "Search service temporarily unavailable"
	MsgTimeout         = "Search service timed out"
	MsgCannotConnect   = "Cannot connect to search service"
	MsgOperationFailed = "Search operation failed"
	MsgUnexpected      = "Unexpected error"
)

// FieldViolation describes one failed validation rule
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Violations []FieldViolation
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: message}}}
}

// Add appends a violation
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// HasViolations reports whether any rule failed
func (e *ValidationError) HasViolations() bool {
	return e != nil && len(e.Violations) > 0
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// ExternalAPIError represents a non-2xx answer from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string

	// RateLimited is set when the upstream refused the call because of quota
	RateLimited bool
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// TimeoutError represents an upstream call that kept timing out
type TimeoutError struct {
	API      string
	Attempts int
	Err      error
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %d attempts: %v", e.API, e.Attempts, e.Err)
}

// Unwrap returns the last timeout cause
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// TransportError represents a network-level failure talking to an external API
type TransportError struct {
	API string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.API, e.Err)
}

// Unwrap returns the underlying network error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsTimeout checks if an error is a TimeoutError
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// PublicMessage returns the client-facing message for an error.
// Internal details are never exposed; upstream 4xx messages are passed through.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var apiErr *ExternalAPIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.RateLimited:
			return orDefault(apiErr.Message, MsgRateLimited)
		case apiErr.StatusCode >= 500:
			return MsgUnavailable
		case apiErr.StatusCode >= 400:
			return orDefault(apiErr.Message, MsgInvalidRequest)
		default:
			return MsgOperationFailed
		}
	}

	if IsTimeout(err) {
		return MsgTimeout
	}

	if IsTransport(err) {
		return MsgCannotConnect
	}

	return MsgOperationFailed
}

// HTTPStatus returns the status code a search failure is reported with
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if IsValidation(err) {
		return http.StatusBadRequest
	}

	var apiErr *ExternalAPIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.RateLimited:
			return http.StatusTooManyRequests
		case apiErr.StatusCode >= 500:
			return http.StatusServiceUnavailable
		case apiErr.StatusCode >= 400:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}

	if IsTimeout(err) {
		return http.StatusGatewayTimeout
	}

	if IsTransport(err) {
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
