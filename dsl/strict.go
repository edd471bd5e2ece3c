package dsl

import (
	"context"
	"sort"
	"strconv"

	looseschema "github.com/dmrazzy/looseschema"
)

// Array returns the strict counterpart of LooseArray: any failing element
// fails the whole call, with every element issue collected and prefixed by
// its index.
func Array[E any](elem looseschema.Schema[E]) looseschema.Schema[[]E] {
	return arraySchema[E]{elem: elem}
}

type arraySchema[E any] struct{ elem looseschema.Schema[E] }

func (a arraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
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
	var iss looseschema.Issues
	for i := range src {
		ev, err := a.elem.Parse(ctx, src[i])
		if err != nil {
			base := "/" + strconv.Itoa(i)
			iss = looseschema.AppendIssues(iss, looseschema.PrefixIssues(base, looseschema.ToIssues(err))...)
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Record returns the strict counterpart of LooseRecord: any failing value
// fails the whole call, with issues keyed by entry.
func Record[V any](val looseschema.Schema[V]) looseschema.Schema[map[string]V] {
	return recordSchema[V]{val: val}
}

type recordSchema[V any] struct{ val looseschema.Schema[V] }

func (r recordSchema[V]) Parse(ctx context.Context, v any) (map[string]V, error) {
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
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]V, len(src))
	var iss looseschema.Issues
	for _, k := range keys {
		vv, err := r.val.Parse(ctx, src[k])
		if err != nil {
			base := "/" + looseschema.EscapeToken(k)
			iss = looseschema.AppendIssues(iss, looseschema.PrefixIssues(base, looseschema.ToIssues(err))...)
			continue
		}
		out[k] = vv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}
