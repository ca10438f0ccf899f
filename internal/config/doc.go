// Package config loads, normalizes, and validates unscramble configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as
// UNSCRAMBLE_VECTORS_PATH, optionally seeded from a .env file in the working
// directory. The Config type centralizes every knob the CLI and organizer
// need: grouping thresholds, stop-word language, exclude patterns, and where
// word vectors live.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
