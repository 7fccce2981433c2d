// Package logging configures structured logging for shootdesk on top of
// log/slog.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log shipping. Attr helpers mirror the slog constructors so
// call sites stay terse, and NewNop returns a discard logger for tests.
// Component loggers are derived with logger.With(logging.String("component", …))
// so console output can group lines by subsystem.
package logging
