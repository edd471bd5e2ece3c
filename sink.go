package looseschema

import (
	"context"
	"log/slog"
)

// LogSink returns a Sink that records the accumulated issues through logger
// at the given level. A nil logger falls back to slog.Default at call time.
func LogSink(logger *slog.Logger, level slog.Level, msg string) Sink[any] {
	return func(ec ErrorContext[any]) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		l.Log(context.Background(), level, msg,
			slog.Int("issues", len(ec.Err)),
			slog.String("detail", ec.Err.Error()),
		)
	}
}

// DebugSink is LogSink at debug level, the usual choice for tolerant
// collection validators where dropped entries are expected operational noise.
func DebugSink(logger *slog.Logger, msg string) Sink[any] {
	return LogSink(logger, slog.LevelDebug, msg)
}

// WarnSink is LogSink at warn level, for inputs where dropped entries point
// at caller mistakes worth surfacing.
func WarnSink(logger *slog.Logger, msg string) Sink[any] {
	return LogSink(logger, slog.LevelWarn, msg)
}
