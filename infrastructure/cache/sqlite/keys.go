// ABOUTME: Key and value validation for the SQLite cache
// ABOUTME: Rejects malformed entries and flags keys carrying SQL-looking fragments

package sqlite

import (
	"errors"
	"fmt"
	"strings"
)

// Logger is the subset of the application logger the cache needs
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

const (
	maxKeyLength   = 512
	maxValueLength = 4 * 1024 * 1024
)

// Fragments that are harmless under parameterized queries but worth a warning,
// since search keywords flow into keys unmodified
var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// ValidateKey checks a cache key, warning through logger about suspicious content
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	// Check for null bytes which can cause issues
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
			break
		}
	}

	return nil
}

func truncateKey(key string) string {
	const preview = 50
	if len(key) <= preview {
		return key
	}
	return key[:preview] + "..."
}

// ValidateValue checks a cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}

	return nil
}
