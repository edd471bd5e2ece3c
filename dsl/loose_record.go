package dsl

import (
	"context"
	"sort"

	looseschema "github.com/dmrazzy/looseschema"
)

// LooseRecordBuilder exposes chaining methods for tolerant record schemas
// while implementing Schema[map[K]V].
type LooseRecordBuilder[K comparable, V any] interface {
	looseschema.Schema[map[K]V]
	// WithSink attaches a diagnostic sink that receives the issues of dropped
	// entries, keyed by raw input key, once per Parse call.
	WithSink(sink looseschema.Sink[any]) LooseRecordBuilder[K, V]
}

// LooseRecord returns a tolerant record schema over string keys: every value
// is validated independently against val, entries with failing values are
// dropped, and the call succeeds with the surviving entries. Only the
// container shape itself is a hard failure.
func LooseRecord[V any](val looseschema.Schema[V]) LooseRecordBuilder[string, V] {
	return &looseRecordSchema[string, V]{key: String(), val: val}
}

// LooseRecordWithKeys is LooseRecord with an explicit key schema. Each entry
// keeps only when both key and value validate; the output is keyed by the
// validated key, so a transforming key schema (normalization, renames)
// rewrites keys on the way through.
func LooseRecordWithKeys[K comparable, V any](key looseschema.Schema[K], val looseschema.Schema[V]) LooseRecordBuilder[K, V] {
	return &looseRecordSchema[K, V]{key: key, val: val}
}

type looseRecordSchema[K comparable, V any] struct {
	key  looseschema.Schema[K]
	val  looseschema.Schema[V]
	sink looseschema.Sink[any]
}

// WithSink attaches the diagnostic sink.
func (r *looseRecordSchema[K, V]) WithSink(sink looseschema.Sink[any]) LooseRecordBuilder[K, V] {
	r.sink = sink
	return r
}

func (r *looseRecordSchema[K, V]) Parse(ctx context.Context, v any) (map[K]V, error) {
	var src map[string]any
	switch t := v.(type) {
	case map[string]any:
		src = t
	case map[string]V:
		src = make(map[string]any, len(t))
		for k, vv := range t {
			src[k] = vv
		}
	default:
		return nil, looseschema.Issues{{Path: "/", Code: looseschema.CodeInvalidType, Message: "expected object", Fatal: true}}
	}
	// Sorted raw-key order keeps diagnostic output deterministic.
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[K]V, len(src))
	var dropped looseschema.Issues
	for _, k := range keys {
		base := "/" + looseschema.EscapeToken(k)
		kk, kerr := r.key.Parse(ctx, k)
		if kerr != nil {
			// A failed key drops the entry outright; the value is not
			// validated on its behalf.
			if r.sink != nil {
				dropped = looseschema.AppendIssues(dropped, looseschema.PrefixIssues(base, looseschema.ToIssues(kerr))...)
			}
			continue
		}
		vv, verr := r.val.Parse(ctx, src[k])
		if verr != nil {
			if r.sink != nil {
				dropped = looseschema.AppendIssues(dropped, looseschema.PrefixIssues(base, looseschema.ToIssues(verr))...)
			}
			continue
		}
		out[kk] = vv
	}
	if r.sink != nil && len(dropped) > 0 {
		r.sink(looseschema.ErrorContext[any]{Err: dropped, Input: v})
	}
	return out, nil
}
