package looseschema

// Package looseschema provides:
//
// - Composable validation of untyped input based on Schema[T] (Parse)
// - A stable error model via Issues (JSON Pointer, code, message, fatal flag)
// - Tolerant collection validation that keeps the valid part of a mostly
//   valid document (dsl.LooseArray / dsl.LooseRecord)
// - Format coercion from text to structured values (format.JSON, format.YAML,
//   format.TOML, format.UTCDate, ...)
// - Circular-reference detection over decoded documents (NonCircular)
//
// Design policy:
// - Keep only public APIs in the root package; collection builders live under
//   dsl/ and text-format coercion under format/.
// - Validators are immutable once built and carry no shared state; every
//   Parse call accumulates issues and traversal state on its own stack, so a
//   single Schema may be shared across goroutines freely.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := dsl.LooseRecord[any](format.JSON()).
//		WithSink(looseschema.LogSink(logger, slog.LevelDebug, "dropped config entries"))
//	v, err := s.Parse(ctx, raw)
//
// Tolerant validators succeed on partially valid collections and report the
// dropped elements once, in aggregate, through the configured sink.
