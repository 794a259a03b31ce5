package viewjson

import (
	"fmt"
	"strings"
)

const previewRuneLimit = 50

// FormatPreview renders a short one-line summary of a value for tree rows:
// scalars verbatim, strings quoted and truncated, containers as Array[n] /
// Object{n}.
func FormatPreview(v Value) string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return normalizeNumber(v.Number)
	case KindString:
		runes := []rune(v.Str)
		if len(runes) > previewRuneLimit {
			return fmt.Sprintf("%q...", string(runes[:previewRuneLimit]))
		}
		return fmt.Sprintf("%q", v.Str)
	case KindArray:
		return fmt.Sprintf("Array[%d]", len(v.Items))
	case KindObject:
		return fmt.Sprintf("Object{%d}", len(v.Members))
	default:
		return "null"
	}
}

// FormatLiteral renders a value for the detail pane: strings appear as-is
// (escapes already decoded), everything else as pretty canonical JSON.
func FormatLiteral(v Value) string {
	if v.Kind == KindString {
		return v.Str
	}
	var b strings.Builder
	writeCanonical(&b, v, 0)
	return b.String()
}
