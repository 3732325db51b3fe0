package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateSnapshot_NilSettings(t *testing.T) {
	_, err := CreateSnapshot(nil)
	if err != ErrNilSettings {
		t.Errorf("CreateSnapshot(nil) = %v, want ErrNilSettings", err)
	}
}

func TestCreateSnapshot_RedactsSecrets(t *testing.T) {
	s := loadForDump(t)

	snap, err := CreateSnapshot(s)
	if err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}

	if snap.Version != SnapshotVersion {
		t.Errorf("Version = %q, want %q", snap.Version, SnapshotVersion)
	}
	if snap.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}

	if snap.Settings["GEMINI_API_KEY"] != Redacted {
		t.Errorf("GEMINI_API_KEY = %v, want redaction token", snap.Settings["GEMINI_API_KEY"])
	}
	if snap.Settings["SECRET_KEY"] != Redacted {
		t.Errorf("SECRET_KEY = %v, want redaction token", snap.Settings["SECRET_KEY"])
	}

	dbURL, _ := snap.Settings["DATABASE_URL"].(string)
	if strings.Contains(dbURL, "hunter2") {
		t.Errorf("snapshot leaked database password: %q", dbURL)
	}

	if len(snap.Provenance) == 0 {
		t.Error("snapshot should carry provenance")
	}
}

func TestCreateSnapshot_ExcludeKeys(t *testing.T) {
	s := loadForDump(t)

	snap, err := CreateSnapshot(s, WithExcludeKeys("database_url", KeyRedisURL))
	if err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}

	if _, ok := snap.Settings["DATABASE_URL"]; ok {
		t.Error("DATABASE_URL should be excluded (case-insensitive match)")
	}
	if _, ok := snap.Settings["REDIS_URL"]; ok {
		t.Error("REDIS_URL should be excluded")
	}
	if _, ok := snap.Settings["DEBUG"]; !ok {
		t.Error("non-excluded keys should remain")
	}
}

func TestExpandPathWithTime(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"with timestamp", "snapshots/settings-{{timestamp}}.json", "snapshots/settings-20240315-103045.json"},
		{"multiple occurrences", "{{timestamp}}/{{timestamp}}.json", "20240315-103045/20240315-103045.json"},
		{"no template", "snapshots/settings.json", "snapshots/settings.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPathWithTime(tt.template, ts); got != tt.want {
				t.Errorf("ExpandPathWithTime(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestWriteSnapshot_RoundTrip(t *testing.T) {
	s := loadForDump(t)

	snap, err := CreateSnapshot(s)
	if err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}

	target := filepath.Join(t.TempDir(), "nested", "settings-{{timestamp}}.json")
	if err := WriteSnapshot(snap, target); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	expanded := ExpandPathWithTime(target, snap.Timestamp)
	data, err := os.ReadFile(expanded)
	if err != nil {
		t.Fatalf("snapshot file not written at expanded path: %v", err)
	}

	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("snapshot file is not valid JSON: %v", err)
	}
	if got.Version != SnapshotVersion {
		t.Errorf("round-tripped Version = %q, want %q", got.Version, SnapshotVersion)
	}
	if strings.Contains(string(data), "hunter2") || strings.Contains(string(data), "b2c95f2e0c1a4ddb") {
		t.Error("persisted snapshot contains secret material")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(expanded))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp.") {
			t.Errorf("leftover temp file: %s", entry.Name())
		}
	}
}

func TestWriteSnapshot_Nil(t *testing.T) {
	if err := WriteSnapshot(nil, "whatever.json"); err != ErrNilSettings {
		t.Errorf("WriteSnapshot(nil) = %v, want ErrNilSettings", err)
	}
}
