package envkey

import "strings"

// Canonical normalizes a raw configuration key to its canonical
// environment-variable form: surrounding whitespace trimmed, letters
// uppercased. File sources often carry lowercase keys
// ("database_url"); the canonical form matches the process-environment
// spelling ("DATABASE_URL").
// Examples:
//   - "database_url" → "DATABASE_URL"
//   - " DEBUG "      → "DEBUG"
//   - "Max_Upload_Size" → "MAX_UPLOAD_SIZE"
func Canonical(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// StripPrefix removes prefix from key and reports whether it matched.
// Matching is case-insensitive unless caseSensitive is set; the
// returned remainder preserves the original casing of key.
// Examples:
//   - StripPrefix("CODEPILOT_DEBUG", "CODEPILOT_", false) → "DEBUG", true
//   - StripPrefix("codepilot_debug", "CODEPILOT_", false) → "debug", true
//   - StripPrefix("PATH", "CODEPILOT_", false)            → "", false
func StripPrefix(key, prefix string, caseSensitive bool) (string, bool) {
	if prefix == "" {
		return key, true
	}

	var hasPrefix bool
	if caseSensitive {
		hasPrefix = strings.HasPrefix(key, prefix)
	} else {
		hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(prefix))
	}

	if !hasPrefix {
		return "", false
	}
	return key[len(prefix):], true
}
