// Package logging assembles structured slog loggers and formatting helpers used
// across zhbatch.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so task code can automatically tag log
// lines with task identifiers and kinds. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
