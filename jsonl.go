package viewjson

import (
	"strings"

	json "github.com/goccy/go-json"

	"github.com/arjunguha/viewjson/i18n"
)

// LooksLikeJSONL reports whether content spans more than one line and every
// non-empty line is strictly valid JSON on its own. The strict decoder is
// the oracle here; the tolerant engine is not consulted, so a multi-line
// document with a stray newline does not get misread as JSONL.
func LooksLikeJSONL(content string) bool {
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return false
	}
	seen := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !json.Valid([]byte(trimmed)) {
			return false
		}
		seen++
	}
	return seen > 1
}

// ParseJSONL parses each non-empty line with the tolerant engine and combines
// the line values into one array-valued Result. Diagnostics keep their real
// position in the whole input.
func ParseJSONL(content, name string, opt Options) Result {
	lines := strings.Split(content, "\n")
	out := Result{SourceName: name, Format: FormatJSONL}
	var items []Value
	offset := 0
	for i, line := range lines {
		lineNo := i + 1
		if strings.TrimSpace(line) != "" {
			res := Parse(line, opt)
			for _, d := range res.Diagnostics {
				d.Pos = Position{
					Offset: offset + d.Pos.Offset,
					Line:   lineNo,
					Col:    d.Pos.Col,
				}
				out.Diagnostics = AppendDiagnostics(out.Diagnostics, d)
			}
			if res.Value != nil {
				items = append(items, *res.Value)
			}
		}
		offset += len(line) + 1
	}
	if len(items) == 0 {
		out.Diagnostics = AppendDiagnostics(out.Diagnostics, Diagnostic{
			Severity: Error,
			Code:     CodeEmptyDocument,
			Message:  i18n.T(CodeEmptyDocument, nil),
			Pos:      Position{Offset: 0, Line: 1, Col: 1},
		})
		return out
	}
	v := Value{Kind: KindArray, Items: items}
	out.Value = &v
	return out
}
