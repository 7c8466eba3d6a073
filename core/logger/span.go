package logger

import (
	"time"

	"go.uber.org/zap"
)

// Span logs entry into a named operation and returns a function that logs
// its exit with the elapsed time. Deferring the returned function
// guarantees the exit log on every return path:
//
//	defer logger.Span(log, "document connector", zap.String("connector", name))()
func Span(l *zap.Logger, name string, fields ...zap.Field) func() {
	start := time.Now()
	l.Debug("begin "+name, fields...)
	return func() {
		l.Debug("end "+name, append(fields, zap.Duration("elapsed", time.Since(start)))...)
	}
}
