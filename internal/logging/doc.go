// Package logging assembles the structured slog loggers used by unscramble.
//
// It owns the console and JSON handlers, level parsing, and output routing,
// and exposes context helpers so every line of a sort run carries its run id,
// directory, and mode. A no-op logger is provided for tests and for wiring
// code that receives a nil logger.
package logging
