// Package logging provides zerolog-based structured logging for feedline.
//
// The terminal is owned by the interactive timeline view, so logging is routed to a
// file whenever the TUI runs. Key features:
//   - Console or JSON output, level parsing with an info fallback
//   - File output with a stderr fallback when the file cannot be opened
//   - Component sub-loggers and context propagation
//   - ULID trace IDs attached to every command invocation
package logging
