package settings

import (
	"net/url"
	"slices"
	"time"
)

// Recognized configuration keys. Key names are an external contract
// shared with the deployment's .env file and must not change.
const (
	KeyDatabaseURL       = "DATABASE_URL"
	KeyRedisURL          = "REDIS_URL"
	KeyGeminiAPIKey      = "GEMINI_API_KEY"
	KeySecretKey         = "SECRET_KEY"
	KeyDebug             = "DEBUG"
	KeyMaxUploadSize     = "MAX_UPLOAD_SIZE"
	KeyAllowedExtensions = "ALLOWED_EXTENSIONS"
	KeyTempDir           = "TEMP_DIR"
	KeyRateLimitCalls    = "RATE_LIMIT_CALLS"
	KeyRateLimitPeriod   = "RATE_LIMIT_PERIOD"
)

// Documented defaults for optional keys.
const (
	DefaultMaxUploadBytes  = 100 * 1024 * 1024 // 100 MiB
	DefaultTempDir         = "temp_repos"
	DefaultRateLimitCalls  = 100
	DefaultRateLimitPeriod = time.Hour
)

// DefaultAllowedExtensions lists the source-file extensions accepted
// for upload when ALLOWED_EXTENSIONS is not set.
var DefaultAllowedExtensions = []string{
	".py", ".js", ".ts", ".java", ".cpp", ".c", ".go", ".rs", ".rb", ".php",
}

// recognizedKeys is the full key set; anything else is ignored unless
// the loader runs in strict mode.
var recognizedKeys = map[string]bool{
	KeyDatabaseURL:       true,
	KeyRedisURL:          true,
	KeyGeminiAPIKey:      true,
	KeySecretKey:         true,
	KeyDebug:             true,
	KeyMaxUploadSize:     true,
	KeyAllowedExtensions: true,
	KeyTempDir:           true,
	KeyRateLimitCalls:    true,
	KeyRateLimitPeriod:   true,
}

// knownPlaceholders are template values shipped in .env examples.
// A secret equal to one of these signals an unconfigured deployment.
var knownPlaceholders = map[string]bool{
	"your-secret-key-here":     true,
	"your-gemini-api-key-here": true,
	"your-api-key-here":        true,
	"changeme":                 true,
	"change-me":                true,
	"replace-me":               true,
}

// Settings is the validated, immutable runtime configuration.
// Constructed exactly once per process by Loader.Load and safe for any
// number of concurrent readers; never mutate it after load.
type Settings struct {
	// DatabaseURL is the primary database connection URI.
	DatabaseURL *url.URL

	// CacheURL is the cache/queue broker connection URI (REDIS_URL).
	CacheURL *url.URL

	// AIAPIKey authenticates against the Gemini API.
	AIAPIKey Secret

	// SecretKey signs session and token material.
	SecretKey Secret

	// Debug enables debug behavior in the consuming application.
	Debug bool

	// MaxUploadBytes caps the size of a single uploaded file.
	MaxUploadBytes uint64

	// AllowedExtensions lists accepted upload file extensions.
	AllowedExtensions []string

	// TempDir is the scratch directory for cloned repositories.
	TempDir string

	// RateLimitCalls is the number of calls allowed per RateLimitPeriod.
	RateLimitCalls int

	// RateLimitPeriod is the rate-limit window.
	RateLimitPeriod time.Duration
}

// Equal reports whether two Settings are field-for-field equal.
// Loading the same input twice yields Equal settings.
func (s *Settings) Equal(o *Settings) bool {
	if s == nil || o == nil {
		return s == o
	}
	return urlEqual(s.DatabaseURL, o.DatabaseURL) &&
		urlEqual(s.CacheURL, o.CacheURL) &&
		s.AIAPIKey == o.AIAPIKey &&
		s.SecretKey == o.SecretKey &&
		s.Debug == o.Debug &&
		s.MaxUploadBytes == o.MaxUploadBytes &&
		slices.Equal(s.AllowedExtensions, o.AllowedExtensions) &&
		s.TempDir == o.TempDir &&
		s.RateLimitCalls == o.RateLimitCalls &&
		s.RateLimitPeriod == o.RateLimitPeriod
}

func urlEqual(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}
