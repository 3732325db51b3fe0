// Package sourcefile provides a settings.Source backed by a structured
// configuration file (YAML, JSON, or TOML) for deployments that ship
// settings.yaml instead of a .env file. Only top-level scalar keys (and
// lists of scalars) are recognized.
package sourcefile
