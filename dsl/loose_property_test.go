package dsl_test

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	looseschema "github.com/dmrazzy/looseschema"
	"github.com/dmrazzy/looseschema/dsl"
)

// Property: for any mixed sequence, LooseArray keeps exactly the elements the
// element schema accepts, in original order, so the output never exceeds the
// input length.
func TestProperty_LooseArrayKeepsExactlyValidElements(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		elems := rapid.SliceOf(rapid.OneOf(
			rapid.StringMatching(`[a-z]{0,8}`).AsAny(),
			rapid.Float64().AsAny(),
			rapid.Bool().AsAny(),
		)).Draw(t, "elems")

		out, err := dsl.LooseArray[string](dsl.String()).Parse(context.Background(), elems)
		if err != nil {
			t.Fatalf("loose array must not fail on a sequence: %v", err)
		}
		want := make([]string, 0, len(elems))
		for _, e := range elems {
			if s, ok := e.(string); ok {
				want = append(want, s)
			}
		}
		if len(out) != len(want) {
			t.Fatalf("kept %d elements, want %d", len(out), len(want))
		}
		for i := range want {
			if out[i] != want[i] {
				t.Fatalf("order not preserved at %d: got %q want %q", i, out[i], want[i])
			}
		}
		if len(out) > len(elems) {
			t.Fatalf("output longer than input")
		}
	})
}

// Property: LooseRecord keeps an entry iff both key and value validate, and
// the sink fires at most once, only when something was dropped.
func TestProperty_LooseRecordKeepsEntriesWithBothValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := rapid.MapOf(
			rapid.StringMatching(`[a-z]{1,6}`),
			rapid.OneOf(
				rapid.StringMatching(`[a-z]{0,6}`).AsAny(),
				rapid.Float64().AsAny(),
			),
		).Draw(t, "m")

		in := make(map[string]any, len(m))
		for k, v := range m {
			in[k] = v
		}
		var calls int
		out, err := dsl.LooseRecord[string](dsl.String()).
			WithSink(func(looseschema.ErrorContext[any]) { calls++ }).
			Parse(context.Background(), in)
		if err != nil {
			t.Fatalf("loose record must not fail on a mapping: %v", err)
		}
		dropped := 0
		for k, v := range in {
			s, ok := v.(string)
			if !ok {
				dropped++
				if _, kept := out[k]; kept {
					t.Fatalf("entry %q with invalid value must be dropped", k)
				}
				continue
			}
			if out[k] != s {
				t.Fatalf("entry %q must be kept as-is", k)
			}
		}
		if len(out) != len(in)-dropped {
			t.Fatalf("kept %d entries, want %d", len(out), len(in)-dropped)
		}
		wantCalls := 0
		if dropped > 0 {
			wantCalls = 1
		}
		if calls != wantCalls {
			t.Fatalf("sink calls = %d, want %d", calls, wantCalls)
		}
	})
}
