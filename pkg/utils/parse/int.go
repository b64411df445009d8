// ABOUTME: Utility functions for parsing numbers and durations from strings
// ABOUTME: Provides safe parsing with default values

package parse

import (
	"strconv"
	"strings"
	"time"
)

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// IntOrDefault parses an integer, returning def for empty or invalid input
func IntOrDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// DurationOrDefault parses a Go duration ("30s", "2m"), returning def for empty or invalid input
func DurationOrDefault(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return d
}
