// Package sourceenv provides a settings.Source backed by process
// environment variables, with optional prefix filtering.
package sourceenv
