package format_test

import (
	"context"
	"reflect"
	"testing"

	gojson "github.com/goccy/go-json"
	"pgregory.net/rapid"

	"github.com/dmrazzy/looseschema/format"
)

func jsonScalar() *rapid.Generator[any] {
	return rapid.OneOf(
		rapid.StringMatching(`[ -~]{0,12}`).AsAny(),
		rapid.Float64Range(-1e9, 1e9).AsAny(),
		rapid.Bool().AsAny(),
		rapid.Just[any](nil),
	)
}

// Property: serializing any representable value and parsing it back through
// the JSON schema yields the same value.
func TestProperty_JSONRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := rapid.MapOf(
			rapid.StringMatching(`[a-z]{1,6}`),
			rapid.OneOf(
				jsonScalar(),
				rapid.SliceOfN(jsonScalar(), 1, 4).AsAny(),
			),
		).Draw(t, "doc")

		data, err := gojson.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		out, err := format.JSON().Parse(context.Background(), string(data))
		if err != nil {
			t.Fatalf("round-trip parse failed for %s: %v", data, err)
		}
		want := any(doc)
		if len(doc) == 0 {
			want = any(map[string]any{})
		}
		if !reflect.DeepEqual(out, want) {
			t.Fatalf("round trip changed the value:\n in: %#v\nout: %#v", doc, out)
		}
	})
}
