package settings

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// mergedEntry is one key's effective value after source merging.
type mergedEntry struct {
	value      any
	sourceName string // e.g., "dotenv:.env"
	sourceKey  string // e.g., "env:CODEPILOT_DATABASE_URL"
}

// defaultSourceName marks values that came from a documented default
// rather than any source.
const defaultSourceName = "default"

// bindSettings converts merged raw values into a Settings, collecting
// every validation failure, placeholder warning, and provenance entry.
// Keys are processed in a fixed order so error output is deterministic.
func bindSettings(merged map[string]mergedEntry) (*Settings, []FieldError, []Warning, []FieldProvenance) {
	b := &binder{merged: merged}

	s := &Settings{}
	s.DatabaseURL = b.uri(KeyDatabaseURL)
	s.CacheURL = b.uri(KeyRedisURL)
	s.AIAPIKey = b.secret(KeyGeminiAPIKey)
	s.SecretKey = b.secret(KeySecretKey)
	s.Debug = b.boolOr(KeyDebug, false)
	s.MaxUploadBytes = b.byteSizeOr(KeyMaxUploadSize, DefaultMaxUploadBytes)
	s.AllowedExtensions = b.csvOr(KeyAllowedExtensions, DefaultAllowedExtensions)
	s.TempDir = b.stringOr(KeyTempDir, DefaultTempDir)
	s.RateLimitCalls = b.positiveIntOr(KeyRateLimitCalls, DefaultRateLimitCalls)
	s.RateLimitPeriod = b.secondsOr(KeyRateLimitPeriod, DefaultRateLimitPeriod)

	return s, b.errs, b.warns, b.prov
}

type binder struct {
	merged map[string]mergedEntry
	errs   []FieldError
	warns  []Warning
	prov   []FieldProvenance
}

// rawResult distinguishes a key that is absent from one that is set to
// a value the flat settings surface cannot represent.
type rawResult int

const (
	rawOK rawResult = iota
	rawMissing
	rawInvalid
)

// raw returns the string form of a key's merged value.
func (b *binder) raw(key string) (string, mergedEntry, rawResult) {
	entry, ok := b.merged[key]
	if !ok {
		return "", mergedEntry{}, rawMissing
	}
	str, ok := stringify(entry.value)
	if !ok {
		return "", entry, rawInvalid
	}
	return str, entry, rawOK
}

func (b *binder) fail(key, code, message string) {
	b.errs = append(b.errs, FieldError{Key: key, Code: code, Message: message})
}

// failInvalid records a key whose value is set but cannot be
// represented as a single string (e.g., a nested structure from a
// custom source).
func (b *binder) failInvalid(key string) {
	b.fail(key, ErrCodeInvalidValue, "value cannot be represented as a single string")
}

func (b *binder) track(key string, entry mergedEntry, secret bool) {
	b.prov = append(b.prov, FieldProvenance{
		Key:        key,
		SourceName: entry.sourceName,
		SourceKey:  entry.sourceKey,
		Secret:     secret,
	})
}

func (b *binder) trackDefault(key string) {
	b.prov = append(b.prov, FieldProvenance{
		Key:        key,
		SourceName: defaultSourceName,
		SourceKey:  defaultSourceName,
		Default:    true,
	})
}

// uri binds a required connection-string key. The value must decompose
// into scheme, host, and path components.
func (b *binder) uri(key string) *url.URL {
	raw, entry, status := b.raw(key)
	if status == rawMissing {
		b.fail(key, ErrCodeMissingKey, "required key is missing")
		return nil
	}
	if status == rawInvalid {
		b.failInvalid(key)
		return nil
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		b.fail(key, ErrCodeMalformedURI,
			fmt.Sprintf("%q cannot be parsed into scheme/host/path components", raw))
		return nil
	}

	b.track(key, entry, false)
	return u
}

// secret binds a required opaque credential. Template placeholder
// values load, but emit a warning.
func (b *binder) secret(key string) Secret {
	raw, entry, status := b.raw(key)
	if status == rawInvalid {
		b.failInvalid(key)
		return ""
	}
	if status == rawMissing || raw == "" {
		b.fail(key, ErrCodeMissingSecret, "secret is missing or empty")
		return ""
	}

	if knownPlaceholders[strings.ToLower(raw)] {
		b.warns = append(b.warns, Warning{
			Key:     key,
			Code:    WarnCodePlaceholderSecret,
			Message: "value matches a known template placeholder; deployment appears unconfigured",
		})
	}

	b.track(key, entry, true)
	return Secret(raw)
}

// boolOr binds an optional boolean literal.
func (b *binder) boolOr(key string, def bool) bool {
	raw, entry, status := b.raw(key)
	if status == rawMissing {
		b.trackDefault(key)
		return def
	}
	if status == rawInvalid {
		b.failInvalid(key)
		return def
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		b.track(key, entry, false)
		return true
	case "false", "0", "no":
		b.track(key, entry, false)
		return false
	default:
		b.fail(key, ErrCodeInvalidBoolean,
			fmt.Sprintf("%q is not a boolean literal (true/false/1/0/yes/no)", raw))
		return def
	}
}

// byteSizeOr binds an optional positive byte count. A trailing inline
// comment ("104857600  # 100MB in bytes") is stripped before parsing.
func (b *binder) byteSizeOr(key string, def uint64) uint64 {
	n, ok := b.integer(key, int64(def))
	if !ok {
		return def
	}
	if n <= 0 {
		b.fail(key, ErrCodeOutOfRange, fmt.Sprintf("byte count must be positive, got %d", n))
		return def
	}
	b.trackInteger(key)
	return uint64(n)
}

// positiveIntOr binds an optional positive integer.
func (b *binder) positiveIntOr(key string, def int) int {
	n, ok := b.integer(key, int64(def))
	if !ok {
		return def
	}
	if n <= 0 {
		b.fail(key, ErrCodeOutOfRange, fmt.Sprintf("value must be positive, got %d", n))
		return def
	}
	b.trackInteger(key)
	return int(n)
}

// secondsOr binds an optional positive integer number of seconds.
func (b *binder) secondsOr(key string, def time.Duration) time.Duration {
	n, ok := b.integer(key, int64(def/time.Second))
	if !ok {
		return def
	}
	if n <= 0 {
		b.fail(key, ErrCodeOutOfRange, fmt.Sprintf("seconds must be positive, got %d", n))
		return def
	}
	b.trackInteger(key)
	return time.Duration(n) * time.Second
}

// integer parses a key as a signed integer after comment stripping.
// The second result is false when the key is absent or unparseable;
// absence is tracked as a default, parse failures are recorded.
func (b *binder) integer(key string, def int64) (int64, bool) {
	raw, _, status := b.raw(key)
	if status == rawMissing {
		b.trackDefault(key)
		return def, false
	}
	if status == rawInvalid {
		b.failInvalid(key)
		return def, false
	}

	cleaned := strings.TrimSpace(stripInlineComment(raw))
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		b.fail(key, ErrCodeInvalidInteger, fmt.Sprintf("%q is not an integer", raw))
		return def, false
	}
	return n, true
}

// trackInteger records provenance for an integer key that parsed.
func (b *binder) trackInteger(key string) {
	if entry, ok := b.merged[key]; ok {
		b.track(key, entry, false)
	}
}

// csvOr binds an optional comma-separated list. Entries are trimmed
// and empty entries dropped.
func (b *binder) csvOr(key string, def []string) []string {
	raw, entry, status := b.raw(key)
	if status == rawMissing {
		b.trackDefault(key)
		return slices.Clone(def)
	}
	if status == rawInvalid {
		b.failInvalid(key)
		return slices.Clone(def)
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	b.track(key, entry, false)
	return out
}

// stringOr binds an optional non-empty string.
func (b *binder) stringOr(key string, def string) string {
	raw, entry, status := b.raw(key)
	if status == rawInvalid {
		b.failInvalid(key)
		return def
	}
	if status == rawMissing || strings.TrimSpace(raw) == "" {
		b.trackDefault(key)
		return def
	}
	b.track(key, entry, false)
	return strings.TrimSpace(raw)
}

// stripInlineComment drops everything from the first '#' onward.
func stripInlineComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

// stringify renders a raw source value as a single string. Structured
// file sources may deliver native ints, bools, floats, or scalar lists
// (lists join with commas for the csv keys).
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case []any:
		parts := make([]string, 0, len(t))
		for _, elem := range t {
			// Only flat scalar lists are representable; a nested list or
			// map must not silently flatten into the csv form.
			switch elem.(type) {
			case []any, map[string]any, map[any]any:
				return "", false
			}
			s, ok := stringify(elem)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), true
	default:
		return "", false
	}
}
