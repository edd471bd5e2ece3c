package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	looseschema "github.com/dmrazzy/looseschema"
)

// YAML returns a schema that parses the first YAML document from string
// input.
func YAML() looseschema.Schema[any] {
	return textual("YAML", func(s string) (any, error) {
		var v any
		if err := yaml.Unmarshal([]byte(s), &v); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// TagFunc resolves the value of a scalar node carrying a custom tag.
type TagFunc func(value string) (any, error)

// YAMLOption configures MultidocYAML.
type YAMLOption func(*yamlOptions)

type yamlOptions struct {
	tags       map[string]TagFunc
	uniqueKeys bool
}

// WithTagResolver registers a resolver for a custom scalar tag such as
// "!env". Resolvers extend tag handling only; the node-to-value conversion
// itself is fixed and cannot be replaced.
func WithTagResolver(tag string, fn TagFunc) YAMLOption {
	return func(o *yamlOptions) {
		if o.tags == nil {
			o.tags = make(map[string]TagFunc)
		}
		o.tags[tag] = fn
	}
}

// WithUniqueKeys rejects documents whose mappings repeat a key. Without it a
// repeated key resolves last-wins, matching loose multi-document streams
// assembled by concatenation.
func WithUniqueKeys() YAMLOption {
	return func(o *yamlOptions) { o.uniqueKeys = true }
}

// MultidocYAML returns a schema that parses every document in a YAML stream
// from string input, yielding one value per document.
func MultidocYAML(opts ...YAMLOption) looseschema.Schema[[]any] {
	var o yamlOptions
	for _, f := range opts {
		f(&o)
	}
	inner := textual("YAML", func(s string) (any, error) {
		dec := yaml.NewDecoder(strings.NewReader(s))
		docs := []any{}
		for {
			var node yaml.Node
			err := dec.Decode(&node)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, err
			}
			v, err := nodeValue(&node, &o)
			if err != nil {
				return nil, err
			}
			docs = append(docs, v)
		}
		return docs, nil
	})
	return looseschema.Transform(inner, func(v any) ([]any, error) {
		return v.([]any), nil
	})
}

func nodeValue(n *yaml.Node, o *yamlOptions) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0], o)
	case yaml.ScalarNode:
		if fn, ok := o.tags[n.Tag]; ok {
			return fn(n.Value)
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c, o)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var k string
			if err := n.Content[i].Decode(&k); err != nil {
				return nil, err
			}
			if o.uniqueKeys {
				if _, dup := out[k]; dup {
					return nil, fmt.Errorf("yaml: mapping key %q already defined at line %d", k, n.Content[i].Line)
				}
			}
			v, err := nodeValue(n.Content[i+1], o)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case yaml.AliasNode:
		// Aliases resolve through the decoder, which already rejects
		// self-referential anchors.
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("yaml: unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}
