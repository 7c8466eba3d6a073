// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different
// environments (development vs production) and integrates with the Fiber
// report viewer.
//
// # Scoped spans
//
// Span wraps a named operation with begin/end debug logs and an elapsed
// duration. The exit log is released by deferring the returned function,
// so every return path of an entity documenter is traced without
// per-method wrapping.
//
// # Request correlation
//
// WithRequestID extracts the request id from a Fiber context and attaches
// it to the log entry, so viewer access logs for one request can be
// correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
package logger
