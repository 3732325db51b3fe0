// Package sourcedotenv provides a settings.Source backed by a
// .env-style file: KEY=value lines, blank lines and #-comment lines
// skipped, inline comments on unquoted values stripped.
package sourcedotenv
