package looseschema_test

import (
	"context"
	"testing"

	looseschema "github.com/dmrazzy/looseschema"
)

func TestNonCircular_ScalarsPass(t *testing.T) {
	s := looseschema.NonCircular()
	for _, v := range []any{nil, true, 1.5, "x", int64(7)} {
		if _, err := s.Parse(context.Background(), v); err != nil {
			t.Fatalf("scalar %v must pass: %v", v, err)
		}
	}
}

func TestNonCircular_SelfReferencingMapFails(t *testing.T) {
	a := map[string]any{"name": "a"}
	a["self"] = a
	_, err := looseschema.NonCircular().Parse(context.Background(), a)
	iss, ok := looseschema.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	if len(iss) != 1 || !iss[0].Fatal || iss[0].Code != looseschema.CodeInvalidValue {
		t.Fatalf("expected one fatal invalid_value issue, got %+v", iss)
	}
	if iss[0].Path != "/self" {
		t.Fatalf("issue path should point at the back-reference, got %q", iss[0].Path)
	}
}

func TestNonCircular_DeepCycleFails(t *testing.T) {
	a := map[string]any{}
	b := map[string]any{"up": a}
	a["down"] = []any{"x", b}
	if _, err := looseschema.NonCircular().Parse(context.Background(), a); err == nil {
		t.Fatalf("nested cycle must fail")
	}
}

func TestNonCircular_SharedAcyclicReferencePasses(t *testing.T) {
	c := map[string]any{"shared": true}
	root := map[string]any{
		"a": map[string]any{"ref": c},
		"b": map[string]any{"ref": c},
	}
	out, err := looseschema.NonCircular().Parse(context.Background(), root)
	if err != nil {
		t.Fatalf("DAG-shaped input must pass: %v", err)
	}
	if om, ok := out.(map[string]any); !ok || len(om) != 2 {
		t.Fatalf("input must pass through unchanged, got %v", out)
	}
}

func TestNonCircular_SliceAppearingTwiceInOnePathFails(t *testing.T) {
	inner := []any{"x"}
	inner[0] = inner
	if _, err := looseschema.NonCircular().Parse(context.Background(), inner); err == nil {
		t.Fatalf("self-referencing slice must fail")
	}
}

func TestNonCircular_RepeatedSiblingSlicesPass(t *testing.T) {
	leaf := []any{1.0, 2.0}
	root := []any{leaf, leaf, leaf}
	if _, err := looseschema.NonCircular().Parse(context.Background(), root); err != nil {
		t.Fatalf("repeated sibling references must pass: %v", err)
	}
}

func TestNonCircular_EmptyCompositesPass(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{},
		"b": []any{},
		"c": []any{map[string]any{}, []any{}},
	}
	if _, err := looseschema.NonCircular().Parse(context.Background(), root); err != nil {
		t.Fatalf("empty composites can never cycle: %v", err)
	}
}

func TestNonCircular_ShortCircuitsDownstreamTransform(t *testing.T) {
	ran := false
	s := looseschema.Transform(looseschema.NonCircular(), func(v any) (any, error) {
		ran = true
		return v, nil
	})
	a := map[string]any{}
	a["a"] = a
	if _, err := s.Parse(context.Background(), a); err == nil {
		t.Fatalf("expected failure")
	}
	if ran {
		t.Fatalf("transform must not run on circular input")
	}
}
