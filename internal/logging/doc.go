// Package logging constructs the slog loggers used across shipway.
//
// CI jobs capture stdout as command output, so loggers write to stderr by
// default. Two formats are supported: a terse console format for humans
// reading job logs and a JSON format for log collectors. Component loggers
// stamp a standard attribute so every line can be traced back to the
// package that emitted it.
package logging
