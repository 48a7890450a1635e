// Package config loads, normalizes, and validates shipway configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SHIPWAY_RELEASE_TOKEN and the CI output-file variable. The Config type
// centralizes every knob the CLI needs so artifact locations, template
// search order, and release API credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
