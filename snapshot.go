package settings

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxSnapshotSize is the maximum allowed snapshot size (1MB). A
// serialized settings snapshot is tiny; anything larger indicates
// corruption.
const MaxSnapshotSize = 1 << 20

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = "1.0"

// Snapshot errors.
var (
	// ErrSnapshotTooLarge is returned when a snapshot exceeds MaxSnapshotSize.
	ErrSnapshotTooLarge = errors.New("settings: snapshot exceeds 1MB size limit")

	// ErrNilSettings is returned when CreateSnapshot receives nil settings.
	ErrNilSettings = errors.New("settings: settings is nil")
)

// Snapshot is a point-in-time capture of the effective settings for
// diagnostics and support bundles. Secret values are redacted before
// capture; a snapshot never contains credential material.
type Snapshot struct {
	// Version is the snapshot format version (currently "1.0")
	Version string `json:"version"`

	// Timestamp is when the snapshot was created
	Timestamp time.Time `json:"timestamp"`

	// Settings contains the effective values keyed by canonical key,
	// with secrets redacted and URL passwords masked.
	Settings map[string]any `json:"settings"`

	// Provenance tracks the source of each key.
	Provenance []FieldProvenance `json:"provenance"`
}

// SnapshotOption configures snapshot creation behavior.
type SnapshotOption func(*snapshotConfig)

// snapshotConfig holds internal configuration for snapshot creation.
type snapshotConfig struct {
	excludeKeys []string // Keys to exclude
}

// WithExcludeKeys excludes the given keys from the snapshot.
func WithExcludeKeys(keys ...string) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.excludeKeys = append(cfg.excludeKeys, keys...)
	}
}

// CreateSnapshot captures the current settings state with secrets
// redacted. The snapshot's Timestamp is captured at creation time.
func CreateSnapshot(s *Settings, opts ...SnapshotOption) (*Snapshot, error) {
	if s == nil {
		return nil, ErrNilSettings
	}

	snapCfg := &snapshotConfig{}
	for _, opt := range opts {
		opt(snapCfg)
	}

	timestamp := time.Now().UTC()

	var provFields []FieldProvenance
	if prov, ok := GetProvenance(s); ok && prov != nil {
		provFields = prov.Fields
	}

	flat := flattenSettings(s)
	flat = applyExclusions(flat, snapCfg.excludeKeys)

	return &Snapshot{
		Version:    SnapshotVersion,
		Timestamp:  timestamp,
		Settings:   flat,
		Provenance: provFields,
	}, nil
}

// flattenSettings returns the effective values keyed by canonical key.
// Redaction rules match DumpEffective.
func flattenSettings(s *Settings) map[string]any {
	result := make(map[string]any)
	for _, field := range collectFields(s) {
		result[field.key] = field.jsonValue
	}
	return result
}

// applyExclusions filters out excluded keys. Matching is
// case-insensitive.
func applyExclusions(flat map[string]any, exclude []string) map[string]any {
	if len(exclude) == 0 {
		return flat
	}

	excludeSet := make(map[string]bool)
	for _, key := range exclude {
		excludeSet[strings.ToUpper(key)] = true
	}

	result := make(map[string]any)
	for key, value := range flat {
		if !excludeSet[strings.ToUpper(key)] {
			result[key] = value
		}
	}
	return result
}

// ExpandPath expands template variables using current time.
// For consistency with snapshot metadata, prefer WriteSnapshot which
// uses the snapshot's internal timestamp for expansion.
func ExpandPath(template string) string {
	return ExpandPathWithTime(template, time.Now())
}

// ExpandPathWithTime expands template variables using the provided timestamp.
// Replaces all {{timestamp}} occurrences with the time formatted as
// 20060102-150405. Returns the path unchanged if no template variables
// are present.
func ExpandPathWithTime(template string, t time.Time) string {
	timestamp := t.UTC().Format("20060102-150405")
	return strings.ReplaceAll(template, "{{timestamp}}", timestamp)
}

// WriteSnapshot persists a snapshot to disk with atomic write semantics.
// Supports the {{timestamp}} template variable in path, expanded from
// snapshot.Timestamp (not current time) so the filename matches the
// internal metadata. Returns ErrSnapshotTooLarge if the serialized size
// exceeds MaxSnapshotSize.
func WriteSnapshot(snapshot *Snapshot, pathTemplate string) error {
	if snapshot == nil {
		return ErrNilSettings
	}

	targetPath := ExpandPathWithTime(pathTemplate, snapshot.Timestamp)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if len(data) > MaxSnapshotSize {
		return ErrSnapshotTooLarge
	}

	dir := filepath.Dir(targetPath)
	if dir != "" && dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0700); mkdirErr != nil {
			return mkdirErr
		}
	}

	// Temp file in the same directory so the rename stays atomic.
	tempPath, err := generateTempFileName(targetPath)
	if err != nil {
		return err
	}

	var tempFileCreated bool
	defer func() {
		if tempFileCreated {
			_ = os.Remove(tempPath)
		}
	}()

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return err
	}
	tempFileCreated = true

	if err := os.Rename(tempPath, targetPath); err != nil {
		return err
	}

	// Rename succeeded, the temp file is now the target.
	tempFileCreated = false

	return nil
}

// generateTempFileName generates a unique temporary file name for
// atomic writes. Format: targetPath + ".tmp." + randomHex
func generateTempFileName(targetPath string) (string, error) {
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	suffix := hex.EncodeToString(randomBytes)
	return targetPath + ".tmp." + suffix, nil
}
