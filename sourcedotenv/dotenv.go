package sourcedotenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	settings "github.com/MuqeetMujeeb/codepilot-settings"
	"github.com/MuqeetMujeeb/codepilot-settings/internal/envkey"
)

// Options configures dotenv source behavior.
type Options struct {
	// Required: if true, a missing file causes an error.
	// Default: false (returns empty map).
	Required bool
}

type dotenvSource struct {
	path string
	opts Options
}

// New creates a .env file source.
func New(path string, opts Options) settings.Source {
	return &dotenvSource{
		path: path,
		opts: opts,
	}
}

// Name returns a human-readable identifier for this source.
func (d *dotenvSource) Name() string {
	return "dotenv:" + filepath.Base(d.path)
}

// Load reads and parses the file, returning canonicalized keys.
// Provenance attributes values to the file as a whole, so no per-entry
// provenance keys are reported.
func (d *dotenvSource) Load(ctx context.Context) (map[string]any, error) {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			if d.opts.Required {
				return nil, fmt.Errorf("required env file not found: %s: %w", d.path, err)
			}
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("read env file %s: %w", d.path, err)
	}

	parsed, err := godotenv.UnmarshalBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("parse env file %s: %w", d.path, err)
	}

	result := make(map[string]any, len(parsed))
	for key, value := range parsed {
		canonical := envkey.Canonical(key)
		if canonical == "" {
			continue
		}
		result[canonical] = value
	}

	return result, nil
}
