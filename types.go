package settings

import "context"

// Source provides raw configuration data from a backend (process
// environment, .env file, structured config file). Keys must be
// canonical environment-variable names (e.g., "DATABASE_URL").
type Source interface {
	// Name identifies the source in errors and provenance (e.g., "dotenv:.env").
	Name() string

	// Load returns configuration as a flat map. Missing optional sources
	// should return an empty map.
	Load(ctx context.Context) (map[string]any, error)
}

// SourceWithKeys additionally reports a provenance key for each entry,
// so provenance can show the exact origin that supplied a value. The
// source owns the format (e.g., "env:CODEPILOT_DATABASE_URL"); entries
// without one fall back to the source name.
type SourceWithKeys interface {
	Source

	// LoadWithKeys returns configuration plus a map from canonical key
	// to the fully-qualified provenance key for that entry.
	LoadWithKeys(ctx context.Context) (map[string]any, map[string]string, error)
}

// Validator performs custom validation after built-in binding.
// Use for cross-field or environment-specific checks.
type Validator interface {
	// Validate checks the loaded settings. Return *LoadError for
	// key-level errors.
	Validate(ctx context.Context, s *Settings) error
}

// ValidatorFunc is a function adapter for the Validator interface.
type ValidatorFunc func(ctx context.Context, s *Settings) error

func (f ValidatorFunc) Validate(ctx context.Context, s *Settings) error {
	return f(ctx, s)
}
