// ABOUTME: Date parsing utilities for search criteria
// ABOUTME: Accepts ISO calendar dates and full timestamps, truncating to the date

package time

import (
	"strings"
	"time"
)

// Accepted layouts for a creation-date bound, most specific last
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate parses a calendar date and returns it at midnight UTC.
// Empty input yields (nil, true); unparseable input yields (nil, false).
func ParseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			d := DateOnly(t)
			return &d, true
		}
	}

	return nil, false
}

// DateOnly drops the time of day, keeping the calendar date in UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
