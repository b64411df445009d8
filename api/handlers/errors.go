// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to HTTP responses shaped as {"error": message}

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"repo-search-api/core/errors"
)

// ErrorBody is the payload of every non-2xx API response
type ErrorBody struct {
	Status  int    `json:"-"`
	Message string `json:"error" doc:"Human-readable error message"`
}

// Error implements the error interface
func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorBody) GetStatus() int {
	return e.Status
}

func init() {
	huma.NewError = newErrorBody
}

// newErrorBody replaces huma's problem+json errors.
// Request validation failures are reported as 400 with their details joined.
func newErrorBody(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	if status == http.StatusBadRequest && len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, err := range errs {
			if err != nil {
				details = append(details, err.Error())
			}
		}
		if len(details) > 0 {
			msg = strings.Join(details, "; ")
		}
	}

	return &ErrorBody{Status: status, Message: msg}
}

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// Only public messages reach the client.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}
	return huma.NewError(errors.HTTPStatus(err), errors.PublicMessage(err))
}
