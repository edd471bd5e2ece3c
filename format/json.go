package format

import (
	gojson "github.com/goccy/go-json"
	"github.com/tailscale/hujson"
	"github.com/titanous/json5"

	looseschema "github.com/dmrazzy/looseschema"
)

// JSON returns a schema that parses a JSON document from string input.
func JSON() looseschema.Schema[any] {
	return textual("JSON", func(s string) (any, error) {
		var v any
		if err := gojson.Unmarshal([]byte(s), &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// JSON5 returns a schema that parses a JSON5 (relaxed JSON) document from
// string input: unquoted keys, trailing commas, single quotes.
func JSON5() looseschema.Schema[any] {
	return textual("JSON5", func(s string) (any, error) {
		var v any
		if err := json5.Unmarshal([]byte(s), &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// JSONC returns a schema that parses a JSON-with-comments document from
// string input. Comments and trailing commas are stripped before standard
// JSON parsing.
func JSONC() looseschema.Schema[any] {
	return textual("JSONC", func(s string) (any, error) {
		std, err := hujson.Standardize([]byte(s))
		if err != nil {
			return nil, err
		}
		var v any
		if err := gojson.Unmarshal(std, &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}
