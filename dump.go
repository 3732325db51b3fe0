package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for DumpEffective.
type dumpConfig struct {
	withSources bool   // Include source attribution for each key
	asJSON      bool   // Output as JSON instead of text format
	indent      string // Indentation for JSON output (default: "  ")
}

// WithSources includes source attribution for each key in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs the settings as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// DumpEffective writes a human-readable representation of the loaded
// settings. Secrets render as the redaction token and URL passwords are
// masked, so the output is safe for logs and support bundles.
func DumpEffective(w io.Writer, s *Settings, opts ...DumpOption) error {
	if s == nil {
		return fmt.Errorf("settings is nil")
	}

	config := dumpConfig{
		indent: "  ", // Default indent
	}
	for _, opt := range opts {
		opt(&config)
	}

	fields := collectFields(s)

	if config.asJSON {
		return dumpAsJSON(w, fields, config)
	}
	return dumpAsText(w, fields, config)
}

// fieldData holds one key's display information.
type fieldData struct {
	key          string // Canonical key (e.g., "DATABASE_URL")
	displayValue string // Text form, redacted if secret
	jsonValue    any    // JSON form, redacted if secret
	annotation   string // Extra human-readable context (e.g., "100 MiB")
	sourceName   string // Source attribution
}

// collectFields renders every settings field in the fixed key order.
func collectFields(s *Settings) []fieldData {
	sources := sourcesByKey(s)

	fields := []fieldData{
		urlFieldData(KeyDatabaseURL, s.DatabaseURL, sources),
		urlFieldData(KeyRedisURL, s.CacheURL, sources),
		{
			key:          KeyGeminiAPIKey,
			displayValue: Redacted,
			jsonValue:    Redacted,
			sourceName:   sources[KeyGeminiAPIKey],
		},
		{
			key:          KeySecretKey,
			displayValue: Redacted,
			jsonValue:    Redacted,
			sourceName:   sources[KeySecretKey],
		},
		{
			key:          KeyDebug,
			displayValue: strconv.FormatBool(s.Debug),
			jsonValue:    s.Debug,
			sourceName:   sources[KeyDebug],
		},
		{
			key:          KeyMaxUploadSize,
			displayValue: strconv.FormatUint(s.MaxUploadBytes, 10),
			jsonValue:    s.MaxUploadBytes,
			annotation:   humanize.IBytes(s.MaxUploadBytes),
			sourceName:   sources[KeyMaxUploadSize],
		},
		{
			key:          KeyAllowedExtensions,
			displayValue: "[" + strings.Join(s.AllowedExtensions, ", ") + "]",
			jsonValue:    s.AllowedExtensions,
			sourceName:   sources[KeyAllowedExtensions],
		},
		{
			key:          KeyTempDir,
			displayValue: strconv.Quote(s.TempDir),
			jsonValue:    s.TempDir,
			sourceName:   sources[KeyTempDir],
		},
		{
			key:          KeyRateLimitCalls,
			displayValue: strconv.Itoa(s.RateLimitCalls),
			jsonValue:    s.RateLimitCalls,
			sourceName:   sources[KeyRateLimitCalls],
		},
		{
			key:          KeyRateLimitPeriod,
			displayValue: s.RateLimitPeriod.String(),
			jsonValue:    s.RateLimitPeriod.String(),
			sourceName:   sources[KeyRateLimitPeriod],
		},
	}

	return fields
}

// urlFieldData renders a connection URI with any password masked.
func urlFieldData(key string, u *url.URL, sources map[string]string) fieldData {
	display := "<nil>"
	var jsonValue any
	if u != nil {
		display = strconv.Quote(u.Redacted())
		jsonValue = u.Redacted()
	}
	return fieldData{
		key:          key,
		displayValue: display,
		jsonValue:    jsonValue,
		sourceName:   sources[key],
	}
}

// sourcesByKey maps each key to its provenance source name, when known.
func sourcesByKey(s *Settings) map[string]string {
	out := make(map[string]string)
	prov, ok := GetProvenance(s)
	if !ok {
		return out
	}
	for _, f := range prov.Fields {
		out[f.Key] = f.SourceName
	}
	return out
}

// dumpAsText outputs settings in "KEY: value" format.
func dumpAsText(w io.Writer, fields []fieldData, config dumpConfig) error {
	for _, field := range fields {
		line := fmt.Sprintf("%s: %s", field.key, field.displayValue)
		if field.annotation != "" {
			line += fmt.Sprintf(" (%s)", field.annotation)
		}
		if config.withSources && field.sourceName != "" {
			line += fmt.Sprintf(" (source: %s)", field.sourceName)
		}
		line += "\n"

		if _, err := w.Write([]byte(line)); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	return nil
}

// dumpAsJSON outputs settings as a JSON object keyed by canonical key.
func dumpAsJSON(w io.Writer, fields []fieldData, config dumpConfig) error {
	result := make(map[string]any, len(fields))
	for _, field := range fields {
		result[field.key] = field.jsonValue
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(result, "", config.indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}
