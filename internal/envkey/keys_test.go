package envkey

import "testing"

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase file key",
			input:    "database_url",
			expected: "DATABASE_URL",
		},
		{
			name:     "already canonical",
			input:    "REDIS_URL",
			expected: "REDIS_URL",
		},
		{
			name:     "mixed case",
			input:    "Max_Upload_Size",
			expected: "MAX_UPLOAD_SIZE",
		},
		{
			name:     "surrounding whitespace",
			input:    "  DEBUG ",
			expected: "DEBUG",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.expected {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		prefix        string
		caseSensitive bool
		want          string
		wantOK        bool
	}{
		{
			name:   "empty prefix matches everything",
			key:    "DEBUG",
			prefix: "",
			want:   "DEBUG",
			wantOK: true,
		},
		{
			name:   "exact prefix",
			key:    "CODEPILOT_DATABASE_URL",
			prefix: "CODEPILOT_",
			want:   "DATABASE_URL",
			wantOK: true,
		},
		{
			name:   "case-insensitive by default",
			key:    "codepilot_debug",
			prefix: "CODEPILOT_",
			want:   "debug",
			wantOK: true,
		},
		{
			name:   "no match",
			key:    "PATH",
			prefix: "CODEPILOT_",
			want:   "",
			wantOK: false,
		},
		{
			name:          "case-sensitive rejects different casing",
			key:           "codepilot_debug",
			prefix:        "CODEPILOT_",
			caseSensitive: true,
			want:          "",
			wantOK:        false,
		},
		{
			name:          "case-sensitive accepts exact casing",
			key:           "CODEPILOT_DEBUG",
			prefix:        "CODEPILOT_",
			caseSensitive: true,
			want:          "DEBUG",
			wantOK:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StripPrefix(tt.key, tt.prefix, tt.caseSensitive)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("StripPrefix(%q, %q, %v) = (%q, %v), want (%q, %v)",
					tt.key, tt.prefix, tt.caseSensitive, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
