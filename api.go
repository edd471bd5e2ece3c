package looseschema

import (
	"context"
	"fmt"
)

// Schema validates and coerces an untyped input into T. Expected invalid
// input is always reported as Issues through the error return; schemas never
// panic on bad data. A constructed Schema is immutable and safe for
// concurrent use.
type Schema[T any] interface {
	Parse(ctx context.Context, v any) (T, error)
}

// SchemaFunc adapts a plain function to Schema.
type SchemaFunc[T any] func(ctx context.Context, v any) (T, error)

func (f SchemaFunc[T]) Parse(ctx context.Context, v any) (T, error) { return f(ctx, v) }

// ErrorContext carries the accumulated issues together with the original
// input, for consumption by a diagnostic Sink.
type ErrorContext[T any] struct {
	Err   Issues
	Input T
}

// Sink consumes an ErrorContext for side effects such as logging. Sinks run
// synchronously, their return is void, and they must not fail.
type Sink[T any] func(ErrorContext[T])

// Transform chains a mapping onto s. An error from f is reported as a custom
// issue at the root of this schema; outer composition prefixes it further. A
// panic from f (for example a delegated parser blowing up on hostile input)
// is recovered and converted to a custom issue rather than escaping.
func Transform[A, B any](s Schema[A], f func(A) (B, error)) Schema[B] {
	return SchemaFunc[B](func(ctx context.Context, v any) (B, error) {
		var zero B
		a, err := s.Parse(ctx, v)
		if err != nil {
			return zero, ToIssues(err)
		}
		b, err := callTransform(f, a)
		if err != nil {
			return zero, ToIssues(err)
		}
		return b, nil
	})
}

func callTransform[A, B any](f func(A) (B, error), a A) (b B, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Issues{{Path: "/", Code: CodeCustom, Message: fmt.Sprintf("transform panicked: %v", r)}}
		}
	}()
	return f(a)
}

// Refine attaches a side validation to s. A rejection from fn becomes an
// invalid_value issue carrying the rule name.
func Refine[T any](s Schema[T], rule string, fn func(T) error) Schema[T] {
	return refine(s, rule, fn, false)
}

// RefineFatal behaves like Refine but marks rejections fatal, so recovery
// wrappers further out must surface the failure instead of substituting.
func RefineFatal[T any](s Schema[T], rule string, fn func(T) error) Schema[T] {
	return refine(s, rule, fn, true)
}

func refine[T any](s Schema[T], rule string, fn func(T) error, fatal bool) Schema[T] {
	return SchemaFunc[T](func(ctx context.Context, v any) (T, error) {
		out, err := s.Parse(ctx, v)
		if err != nil {
			return out, ToIssues(err)
		}
		if rerr := fn(out); rerr != nil {
			var zero T
			msg := rerr.Error()
			if rule != "" {
				msg = rule + ": " + msg
			}
			return zero, Issues{{Path: "/", Code: CodeInvalidValue, Message: msg, Fatal: fatal, Cause: rerr}}
		}
		return out, nil
	})
}

// WithDefault substitutes def when s fails, reporting success downstream.
// Fatal issues are not recovered; they surface unchanged.
func WithDefault[T any](s Schema[T], def T) Schema[T] {
	return WithSink(s, def, nil)
}

// WithSink substitutes def when s fails, first handing the accumulated
// issues and the original input to sink. The sink's outcome does not affect
// the substitution. Fatal issues are not recovered.
func WithSink[T any](s Schema[T], def T, sink Sink[any]) Schema[T] {
	return SchemaFunc[T](func(ctx context.Context, v any) (T, error) {
		out, err := s.Parse(ctx, v)
		if err == nil {
			return out, nil
		}
		iss := ToIssues(err)
		if iss.HasFatal() {
			var zero T
			return zero, iss
		}
		if sink != nil {
			sink(ErrorContext[any]{Err: iss, Input: v})
		}
		return def, nil
	})
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}
