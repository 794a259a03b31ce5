package viewjson

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/arjunguha/viewjson/internal/scan"
)

// Diagnostic codes (exported consts for IDE completion and type safety by
// convention).
const (
	CodeUnexpectedToken = "unexpected_token"
	CodeInvalidToken    = "invalid_token"
	CodeTrailingComma   = "trailing_comma"
	CodeMissingComma    = "missing_comma"
	CodeDuplicateKey    = "duplicate_key"
	CodeEmptyDocument   = "empty_document"
	CodeTrailingContent = "trailing_content"
	CodeMaxDepth        = "max_depth"
	CodeIOError         = "io_error"
	CodeInvalidYAML     = "invalid_yaml"
	CodeInternal        = "internal_error"
)

// Severity expresses the severity level for diagnostics.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Position locates a diagnostic or token in the source. Line and Col are
// 1-based; Offset is the byte offset.
type Position = scan.Position

// Diagnostic is a single parse finding. Recovered reports whether the parser
// resynchronized and kept going after emitting it.
type Diagnostic struct {
	Severity  Severity
	Code      string
	Message   string
	Pos       Position
	Recovered bool
}

// Diagnostics is an ordered collection of findings that implements error.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ds)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		d := ds[i]
		// e.g. unexpected_token at 3:7
		fmt.Fprintf(b, "%s at %s", d.Code, d.Pos)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasError reports whether any diagnostic has severity Error.
func (ds Diagnostics) HasError() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// SortedByPosition returns a copy ordered by ascending source position.
// Diagnostics at the same offset keep their emission order.
func (ds Diagnostics) SortedByPosition() Diagnostics {
	out := make(Diagnostics, len(ds))
	copy(out, ds)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos.Offset < out[j].Pos.Offset })
	return out
}

// AppendDiagnostics appends diagnostics to the destination, initializing the
// slice when needed.
func AppendDiagnostics(dst Diagnostics, more ...Diagnostic) Diagnostics {
	if dst == nil {
		dst = Diagnostics{}
	}
	dst = append(dst, more...)
	return dst
}

// AsDiagnostics extracts Diagnostics from an error using errors.As internally.
func AsDiagnostics(err error) (Diagnostics, bool) {
	if err == nil {
		return nil, false
	}
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}
