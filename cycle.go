package looseschema

import (
	"context"
	"reflect"
	"sort"
	"strconv"
)

// NonCircular returns a schema that passes any value through unchanged
// unless its object graph references itself, in which case it fails with a
// single fatal issue at the offending path. Detection is by reference
// identity along one root-to-leaf path: two branches may share the same
// acyclic subtree and still validate. Identity is the composite's data
// pointer, so a slice and a zero-offset subslice of it count as the same
// node; decoded documents never produce such aliasing.
func NonCircular() Schema[any] {
	return SchemaFunc[any](func(ctx context.Context, v any) (any, error) {
		if iss := walkCycle(v, "", nil); iss != nil {
			return nil, iss
		}
		return v, nil
	})
}

// ancestorChain is a persistent set of composite identities along the
// current root-to-node path. Each recursive call extends the chain by value,
// so sibling branches never observe each other's traversal state.
type ancestorChain struct {
	id uintptr
	up *ancestorChain
}

func (a *ancestorChain) contains(id uintptr) bool {
	for n := a; n != nil; n = n.up {
		if n.id == id {
			return true
		}
	}
	return false
}

func walkCycle(v any, path string, up *ancestorChain) Issues {
	switch t := v.(type) {
	case map[string]any:
		// Empty composites have no descendants and cannot participate in a
		// cycle (and may share a backing pointer with unrelated values).
		if len(t) == 0 {
			return nil
		}
		id := reflect.ValueOf(t).Pointer()
		if up.contains(id) {
			return circularIssue(path)
		}
		down := &ancestorChain{id: id, up: up}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if iss := walkCycle(t[k], path+"/"+EscapeToken(k), down); iss != nil {
				return iss
			}
		}
	case []any:
		if len(t) == 0 {
			return nil
		}
		id := reflect.ValueOf(t).Pointer()
		if up.contains(id) {
			return circularIssue(path)
		}
		down := &ancestorChain{id: id, up: up}
		for i := range t {
			if iss := walkCycle(t[i], path+"/"+strconv.Itoa(i), down); iss != nil {
				return iss
			}
		}
	}
	// Scalars (including nil) terminate recursion; they can never cycle.
	return nil
}

func circularIssue(path string) Issues {
	if path == "" {
		path = "/"
	}
	return Issues{{Path: path, Code: CodeInvalidValue, Message: "circular reference", Fatal: true}}
}
