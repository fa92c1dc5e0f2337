// Package logging provides zerolog-based structured logging for blogposts.
//
// Loggers are built from a Config that selects level, format (console or
// json) and destination (stderr or a file). When a log file cannot be opened
// the logger falls back to stderr and reports why, so callers can warn the
// user once. Every command invocation carries a ULID trace ID in its context;
// FromContext returns the context logger and zerolog hooks attach the trace
// ID to every event written with Ctx(ctx).
package logging
