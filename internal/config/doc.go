// Package config loads, validates, and normalizes curator configuration
// from TOML files with sensible defaults for every field.
package config
