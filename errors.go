package settings

import (
	"fmt"
	"strings"
)

// Error codes for load failures. Each code identifies one failure kind
// so operators can tell a missing key from a malformed value.
const (
	ErrCodeMissingKey     = "missing_required_key"
	ErrCodeMalformedURI   = "malformed_uri"
	ErrCodeMissingSecret  = "missing_secret"
	ErrCodeInvalidBoolean = "invalid_boolean"
	ErrCodeInvalidInteger = "invalid_integer"
	ErrCodeInvalidValue   = "invalid_value"
	ErrCodeOutOfRange     = "out_of_range"
	ErrCodeUnknownKey     = "unknown_key"
)

// WarnCodePlaceholderSecret marks a secret still set to a template
// value from a .env example.
const WarnCodePlaceholderSecret = "placeholder_secret"

// LoadError aggregates every key-level failure from a single load.
// The loader reports all broken keys at once and returns no Settings.
type LoadError struct {
	FieldErrors []FieldError
}

// Error formats the load failure as a multi-line message.
func (e *LoadError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "settings load failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("settings load failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "settings load failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.Key, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Has reports whether any field error carries the given code.
func (e *LoadError) Has(code string) bool {
	for _, fe := range e.FieldErrors {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// ByKey returns all field errors recorded for a key.
func (e *LoadError) ByKey(key string) []FieldError {
	var out []FieldError
	for _, fe := range e.FieldErrors {
		if fe.Key == key {
			out = append(out, fe)
		}
	}
	return out
}

// FieldError represents a single key validation failure.
type FieldError struct {
	Key     string // Configuration key (e.g., "DATABASE_URL")
	Code    string // Error code (e.g., "malformed_uri")
	Message string // Human-readable description
}

// Warning is a non-fatal finding surfaced alongside a successful (or
// failed) load. Warnings never block startup.
type Warning struct {
	Key     string
	Code    string
	Message string
}

// String formats the warning for operator-facing output.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Key, w.Code, w.Message)
}
