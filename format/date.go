package format

import (
	"context"
	"fmt"
	"time"

	looseschema "github.com/dmrazzy/looseschema"
)

// Layouts with an explicit offset are tried first; the remainder are
// interpreted in UTC, never local time.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
	}
	unzonedLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
)

// UTCDate returns a schema that parses an ISO-8601 timestamp from string
// input and normalizes it to UTC. A timestamp without an offset is taken as
// UTC. Impossible calendar dates (such as February 30th) fail instead of
// being clamped.
func UTCDate() looseschema.Schema[time.Time] {
	return looseschema.SchemaFunc[time.Time](func(ctx context.Context, v any) (time.Time, error) {
		s, ok := v.(string)
		if !ok {
			return time.Time{}, looseschema.Issues{{Path: "/", Code: looseschema.CodeInvalidType, Message: "expected string"}}
		}
		t, err := parseUTCDate(s)
		if err != nil {
			return time.Time{}, looseschema.Issues{{Path: "/", Code: looseschema.CodeCustom, Message: "invalid ISO-8601 date", Cause: err}}
		}
		return t.UTC(), nil
	})
}

func parseUTCDate(s string) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range unzonedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as ISO-8601", s)
}
