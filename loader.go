package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/MuqeetMujeeb/codepilot-settings/internal/envkey"
)

// Loader loads and validates settings from one or more sources.
// Sources are processed in order (later override earlier). Load is a
// one-shot, synchronous operation intended for process startup; the
// Settings it returns is immutable and safe for concurrent readers.
type Loader struct {
	sources    []Source
	validators []Validator
	strict     bool // Fail on unrecognized keys (default: false)
}

// NewLoader creates a Loader with no sources or validators.
// Unrecognized keys are ignored for forward compatibility; enable
// Strict to report them instead.
func NewLoader() *Loader {
	return &Loader{
		sources:    make([]Source, 0),
		validators: make([]Validator, 0),
	}
}

// WithSource adds a source. Sources are processed in order (later
// override earlier).
func (l *Loader) WithSource(src Source) *Loader {
	l.sources = append(l.sources, src)
	return l
}

// WithValidator adds a custom validator, executed after built-in
// binding succeeds.
func (l *Loader) WithValidator(v Validator) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Strict controls whether unrecognized keys cause errors. Default: false.
func (l *Loader) Strict(strict bool) *Loader {
	l.strict = strict
	return l
}

// Load merges all sources, binds and validates every recognized key,
// and returns the validated Settings plus any non-fatal warnings.
// On failure it returns a *LoadError aggregating every broken key and
// no Settings; misconfiguration is not transient, so there is no retry.
func (l *Loader) Load(ctx context.Context) (*Settings, []Warning, error) {
	// Step 1: Load from all sources and merge.
	merged := make(map[string]mergedEntry)

	for _, source := range l.sources {
		var data map[string]any
		var provKeys map[string]string
		var err error

		// Sources that report per-entry provenance keys give better
		// attribution than the source name alone.
		if withKeys, ok := source.(SourceWithKeys); ok {
			data, provKeys, err = withKeys.LoadWithKeys(ctx)
		} else {
			data, err = source.Load(ctx)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("load source %s: %w", source.Name(), err)
		}

		for key, value := range data {
			canonical := envkey.Canonical(key)
			if canonical == "" {
				continue
			}

			sourceKey := source.Name()
			if pk, ok := provKeys[canonical]; ok && pk != "" {
				sourceKey = pk
			}

			merged[canonical] = mergedEntry{
				value:      value,
				sourceName: source.Name(),
				sourceKey:  sourceKey,
			}
		}
	}

	// Step 2: In strict mode, report unrecognized keys.
	var fieldErrors []FieldError
	if l.strict {
		var unknown []string
		for key := range merged {
			if !recognizedKeys[key] {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			fieldErrors = append(fieldErrors, FieldError{
				Key:     key,
				Code:    ErrCodeUnknownKey,
				Message: "unrecognized configuration key (strict mode)",
			})
		}
	}

	// Step 3: Bind and validate every recognized key.
	s, bindErrors, warnings, provFields := bindSettings(merged)
	fieldErrors = append(fieldErrors, bindErrors...)

	// Step 4: Run custom validators, but only against a fully bound
	// Settings; a partially bound value must not escape.
	if len(fieldErrors) == 0 {
		for i, validator := range l.validators {
			err := validator.Validate(ctx, s)
			if err == nil {
				continue
			}
			var loadErr *LoadError
			if errors.As(err, &loadErr) {
				fieldErrors = append(fieldErrors, loadErr.FieldErrors...)
			} else {
				return nil, warnings, fmt.Errorf("validator %d failed: %w", i, err)
			}
		}
	}

	// Step 5: Fail fast with every error at once.
	if len(fieldErrors) > 0 {
		return nil, warnings, &LoadError{FieldErrors: fieldErrors}
	}

	// Step 6: Record provenance for the loaded instance.
	storeProvenance(s, &Provenance{Fields: provFields, Warnings: warnings})

	return s, warnings, nil
}
