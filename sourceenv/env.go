package sourceenv

import (
	"context"
	"os"
	"strings"

	settings "github.com/MuqeetMujeeb/codepilot-settings"
	"github.com/MuqeetMujeeb/codepilot-settings/internal/envkey"
)

// Options configures environment variable source behavior.
type Options struct {
	// Prefix filters vars starting with prefix (stripped before
	// canonicalization). Empty = load all vars.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, prefix matching is case-insensitive (CODEPILOT_
	// matches codepilot_, CodePilot_, etc.). When true, the prefix must
	// match exactly. Keys are always canonicalized after stripping.
	CaseSensitive bool
}

type envSource struct {
	opts Options
}

// New creates an environment variable source.
func New(opts Options) settings.Source {
	return &envSource{opts: opts}
}

// Name returns a human-readable identifier for this source.
func (e *envSource) Name() string {
	if e.opts.Prefix != "" {
		return "env:" + e.opts.Prefix + "*"
	}
	return "env"
}

// Load scans environment variables, filters by prefix, and
// canonicalizes keys.
func (e *envSource) Load(ctx context.Context) (map[string]any, error) {
	data, _, err := e.LoadWithKeys(ctx)
	return data, err
}

// LoadWithKeys additionally reports a provenance key naming the full
// variable that supplied each entry (e.g., "env:CODEPILOT_DEBUG").
func (e *envSource) LoadWithKeys(ctx context.Context) (map[string]any, map[string]string, error) {
	result := make(map[string]any)
	provKeys := make(map[string]string)

	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		fullName := parts[0]
		value := parts[1]

		key, ok := envkey.StripPrefix(fullName, e.opts.Prefix, e.opts.CaseSensitive)
		if !ok || key == "" {
			continue
		}

		canonical := envkey.Canonical(key)
		result[canonical] = value
		provKeys[canonical] = "env:" + fullName
	}

	return result, provKeys, nil
}
