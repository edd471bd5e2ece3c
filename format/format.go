// Package format provides schemas that coerce textual serialization formats
// into structured values. Each schema requires string input, delegates the
// text to an external parser, and translates parser failure into a single
// custom issue naming the format. The parsed tree is passed through
// unmodified; structural validation is composed on top by the caller.
package format

import (
	"context"
	"fmt"

	looseschema "github.com/dmrazzy/looseschema"
)

// textual builds a Schema[any] from a named parser. Parser panics are
// contained at this boundary and reported as issues like any other parse
// failure.
func textual(name string, parse func(string) (any, error)) looseschema.Schema[any] {
	return looseschema.SchemaFunc[any](func(ctx context.Context, v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, looseschema.Issues{{Path: "/", Code: looseschema.CodeInvalidType, Message: "expected string"}}
		}
		out, err := callParser(parse, s)
		if err != nil {
			return nil, looseschema.Issues{{Path: "/", Code: looseschema.CodeCustom, Message: "invalid " + name, Cause: err}}
		}
		return out, nil
	})
}

func callParser(parse func(string) (any, error), s string) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panicked: %v", r)
		}
	}()
	return parse(s)
}
