package dsl

import (
	"context"
	"strconv"

	looseschema "github.com/dmrazzy/looseschema"
)

// LooseArrayBuilder exposes chaining methods for tolerant array schemas while
// implementing Schema[[]E].
type LooseArrayBuilder[E any] interface {
	looseschema.Schema[[]E]
	// WithSink attaches a diagnostic sink that receives the issues of dropped
	// elements, index-prefixed, once per Parse call.
	WithSink(sink looseschema.Sink[any]) LooseArrayBuilder[E]
}

// LooseArray returns a tolerant array schema: every element is validated
// independently against elem, failing elements are dropped, and the call
// succeeds with the surviving elements in their original order. Only the
// container shape itself is a hard failure.
func LooseArray[E any](elem looseschema.Schema[E]) LooseArrayBuilder[E] {
	return &looseArraySchema[E]{elem: elem}
}

type looseArraySchema[E any] struct {
	elem looseschema.Schema[E]
	sink looseschema.Sink[any]
}

// WithSink attaches the diagnostic sink.
func (a *looseArraySchema[E]) WithSink(sink looseschema.Sink[any]) LooseArrayBuilder[E] {
	a.sink = sink
	return a
}

func (a *looseArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	var src []any
	switch t := v.(type) {
	case []any:
		src = t
	case []E:
		src = make([]any, len(t))
		for i := range t {
			src[i] = t[i]
		}
	default:
		return nil, looseschema.Issues{{Path: "/", Code: looseschema.CodeInvalidType, Message: "expected array", Fatal: true}}
	}
	out := make([]E, 0, len(src))
	var dropped looseschema.Issues
	for i := range src {
		ev, err := a.elem.Parse(ctx, src[i])
		if err != nil {
			// Issue bookkeeping only pays off when someone listens.
			if a.sink != nil {
				base := "/" + strconv.Itoa(i)
				dropped = looseschema.AppendIssues(dropped, looseschema.PrefixIssues(base, looseschema.ToIssues(err))...)
			}
			continue
		}
		out = append(out, ev)
	}
	if a.sink != nil && len(dropped) > 0 {
		a.sink(looseschema.ErrorContext[any]{Err: dropped, Input: v})
	}
	return out, nil
}
