// Package logging assembles structured slog loggers and attribute helpers used
// across anomalyset.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and stamps every record with the invocation's run ID so lines from
// one indexing run can be grouped. The package also provides a no-op logger
// for tests and library callers that do not want output.
//
// Logs go to stderr by default; stdout is reserved for command output such as
// tables and JSON.
package logging
