package dsl

import (
	"context"

	looseschema "github.com/dmrazzy/looseschema"
)

// String returns the minimal string schema implementation.
func String() looseschema.Schema[string] { return stringSchema{} }

// Bool returns the minimal bool schema implementation.
func Bool() looseschema.Schema[bool] { return boolSchema{} }

// Number returns a schema accepting any numeric scalar, coerced to float64.
// Decoded documents carry numbers as float64 (JSON) or int/int64/uint64
// (YAML, TOML) depending on the source format.
func Number() looseschema.Schema[float64] { return numberSchema{} }

// Any returns a schema that passes every input through unchanged.
func Any() looseschema.Schema[any] { return anySchema{} }

type stringSchema struct{}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", looseschema.Issues{{Path: "/", Code: looseschema.CodeInvalidType, Message: "expected string"}}
	}
	return s, nil
}

type boolSchema struct{}

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, looseschema.Issues{{Path: "/", Code: looseschema.CodeInvalidType, Message: "expected bool"}}
	}
	return b, nil
}

type numberSchema struct{}

func (numberSchema) Parse(ctx context.Context, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, looseschema.Issues{{Path: "/", Code: looseschema.CodeInvalidType, Message: "expected number"}}
	}
}

type anySchema struct{}

func (anySchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }
