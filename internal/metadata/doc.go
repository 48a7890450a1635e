// Package metadata assembles the JSON record describing the artifacts an
// export step produced, including the override set extracted from the
// customization template. The record is consumed by downstream deployment
// tooling and written atomically so a crashed job never leaves a truncated
// file behind.
package metadata
