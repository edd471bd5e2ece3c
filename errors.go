package looseschema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeInvalidType reports a container or scalar whose shape does not match
	// the schema. Shape mismatches are always fatal for the value they occur on.
	CodeInvalidType = "invalid_type"
	// CodeInvalidValue reports a well-shaped value that failed a refinement.
	CodeInvalidValue = "invalid_value"
	// CodeCustom reports a format-parser failure or a user-supplied message.
	CodeCustom = "custom"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	// Fatal marks issues that abort composition: recovery wrappers such as
	// WithDefault must not substitute over them.
	Fatal bool
	Cause error // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasFatal reports whether any issue in the list is fatal.
func (iss Issues) HasFatal() bool {
	for i := range iss {
		if iss[i].Fatal {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ToIssues coerces any error into Issues, wrapping foreign errors as a single
// custom issue at the root.
func ToIssues(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Path: "/", Code: CodeCustom, Message: err.Error(), Cause: err}}
}

// PrefixIssues rebases every issue path under base. Child validators report
// paths relative to themselves; the caller prepends its own segment so the
// final path reads root-to-leaf.
func PrefixIssues(base string, iss Issues) Issues {
	if base == "" || base == "/" {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// EscapeToken escapes a JSON Pointer reference token per RFC 6901
// ('~' -> '~0', '/' -> '~1').
func EscapeToken(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}
