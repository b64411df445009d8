package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-search-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name            string
		input           error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "ValidationError returns 400 with joined messages",
			input:           fmt.Errorf("criteria: %w", &errors.ValidationError{Violations: []errors.FieldViolation{{Field: "keywords", Message: "Keywords must not be blank"}, {Field: "maxPages", Message: "Max pages to be searched must be between 1 and 5"}}}),
			expectedStatus:  400,
			expectedMessage: "Keywords must not be blank; Max pages to be searched must be between 1 and 5",
		},
		{
			name:            "rate limit keeps upstream message",
			input:           fmt.Errorf("fetching page 1: %w", &errors.ExternalAPIError{StatusCode: 403, Message: "API rate limit exceeded", RateLimited: true}),
			expectedStatus:  429,
			expectedMessage: "API rate limit exceeded",
		},
		{
			name:            "rate limit without message",
			input:           &errors.ExternalAPIError{StatusCode: 429, RateLimited: true},
			expectedStatus:  429,
			expectedMessage: errors.MsgRateLimited,
		},
		{
			name:            "upstream 4xx returns 502",
			input:           &errors.ExternalAPIError{StatusCode: 400, Message: "Invalid search request"},
			expectedStatus:  502,
			expectedMessage: "Invalid search request",
		},
		{
			name:            "upstream 5xx returns 503 without details",
			input:           &errors.ExternalAPIError{StatusCode: 500, Message: "stack trace"},
			expectedStatus:  503,
			expectedMessage: errors.MsgUnavailable,
		},
		{
			name:            "timeout returns 504",
			input:           &errors.TimeoutError{API: "github", Attempts: 3, Err: context.DeadlineExceeded},
			expectedStatus:  504,
			expectedMessage: errors.MsgTimeout,
		},
		{
			name:            "transport failure returns 503",
			input:           &errors.TransportError{API: "github", Err: fmt.Errorf("dial tcp: refused")},
			expectedStatus:  503,
			expectedMessage: errors.MsgCannotConnect,
		},
		{
			name:            "unknown error returns 500",
			input:           fmt.Errorf("some unknown error"),
			expectedStatus:  500,
			expectedMessage: errors.MsgOperationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			body, ok := result.(*ErrorBody)
			require.True(t, ok, "expected *ErrorBody, got %T", result)
			assert.Equal(t, tt.expectedStatus, body.GetStatus())
			assert.Equal(t, tt.expectedMessage, body.Message)
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.Nil(t, toHumaError(nil))
}

func TestNewErrorBody_MapsUnprocessableTo400(t *testing.T) {
	err := huma.NewError(http.StatusUnprocessableEntity, "validation failed",
		&huma.ErrorDetail{Message: "expected string", Location: "query.keywords"})

	assert.Equal(t, http.StatusBadRequest, err.GetStatus())
	assert.Contains(t, err.Error(), "expected string")
}

func TestNewErrorBody_ServerErrorsHideDetails(t *testing.T) {
	err := huma.NewError(http.StatusInternalServerError, "Search operation failed", fmt.Errorf("secret"))

	assert.Equal(t, "Search operation failed", err.Error())
}
