// Package config loads, normalizes, and validates the mediapress TOML
// configuration. Values resolve in three layers: compiled defaults, the config
// file, then CLI flags applied by the command layer.
package config
