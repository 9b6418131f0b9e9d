// Package logger provides structured logging for the migrations tool.
//
//   - logger.go: slog based Logger, levels and the process-wide default
//   - context.go: carrying the logger through a context.Context
//   - redact.go: masking of credentials before they reach the output
//
// Logs go to stderr so command output on stdout stays machine readable.
package logger
