// Package logger provides structured logging for csrftok.
//
// The package wraps log/slog:
//
//   - logger.go: handler setup, level control and the package-level logger
//   - context.go: request IDs and logger propagation through context
//   - redact.go: masking of secrets, HMAC keys and tokens in attributes
//
// Secrets and keys are never written in clear; tokens are reduced to a
// short prefix and suffix so log lines can still be correlated.
package logger
