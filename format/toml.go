package format

import (
	"github.com/pelletier/go-toml/v2"

	looseschema "github.com/dmrazzy/looseschema"
)

// TOML returns a schema that parses a TOML document from string input. The
// root of a TOML document is always a table, so the output is a
// map[string]any.
func TOML() looseschema.Schema[any] {
	return textual("TOML", func(s string) (any, error) {
		var m map[string]any
		if err := toml.Unmarshal([]byte(s), &m); err != nil {
			return nil, err
		}
		return m, nil
	})
}
