package sourcefile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	settings "github.com/MuqeetMujeeb/codepilot-settings"
	"github.com/MuqeetMujeeb/codepilot-settings/internal/envkey"
)

// Options configures file source behavior.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false
	// (returns empty map).
	Required bool
}

type fileSource struct {
	path string
	opts Options
}

// New creates a structured-file configuration source.
func New(path string, opts Options) settings.Source {
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Name returns a human-readable identifier for this source.
func (f *fileSource) Name() string {
	return "file:" + filepath.Base(f.path)
}

// Load reads and parses the file, returning top-level keys in
// canonical form. Nested structures are skipped; the settings surface
// is flat by contract.
func (f *fileSource) Load(ctx context.Context) (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.opts.Required {
				return nil, fmt.Errorf("required config file not found: %s: %w", f.path, err)
			}
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("read config file %s: %w", f.path, err)
	}

	format := f.opts.Format
	if format == "" {
		format = inferFormat(f.path)
	}

	var raw map[string]any
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", f.path, err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON file %s: %w", f.path, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML file %s: %w", f.path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: yaml, json, toml)", format)
	}

	result := make(map[string]any, len(raw))
	for key, value := range raw {
		if !isFlatValue(value) {
			continue
		}
		canonical := envkey.Canonical(key)
		if canonical == "" {
			continue
		}
		result[canonical] = value
	}

	return result, nil
}

// isFlatValue accepts scalars and lists of scalars.
func isFlatValue(v any) bool {
	switch t := v.(type) {
	case nil, map[string]any, map[any]any:
		return false
	case []any:
		for _, elem := range t {
			switch elem.(type) {
			case map[string]any, map[any]any, []any, nil:
				return false
			}
		}
		return true
	default:
		return true
	}
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
