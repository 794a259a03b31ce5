package viewjson

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mode selects the serializer output.
type Mode int

const (
	// ModeAuto picks ModeReport when any diagnostic is an Error, else
	// ModeCanonical. This is what the boundary entry points use.
	ModeAuto Mode = iota
	// ModeCanonical renders the value tree as canonical JSON.
	ModeCanonical
	// ModeReport renders the diagnostics as a line-oriented report.
	ModeReport
)

// SelectMode resolves Auto against the diagnostics. It is a pure function of
// the maximum severity so it stays testable apart from rendering.
func SelectMode(ds Diagnostics, m Mode) Mode {
	if m != ModeAuto {
		return m
	}
	if ds.HasError() {
		return ModeReport
	}
	return ModeCanonical
}

// Serialize renders a parse result as a single string: canonical JSON with a
// trailing newline, or a diagnostic report with one finding per line.
func Serialize(res Result, m Mode) string {
	switch SelectMode(res.Diagnostics, m) {
	case ModeReport:
		return RenderReport(res.Diagnostics)
	default:
		var b strings.Builder
		if res.Value == nil {
			b.WriteString("null")
		} else {
			writeCanonical(&b, *res.Value, 0)
		}
		b.WriteByte('\n')
		return b.String()
	}
}

// RenderReport renders diagnostics sorted by position ascending, one
// "severity:line:column: message" line each.
func RenderReport(ds Diagnostics) string {
	var b strings.Builder
	for _, d := range ds.SortedByPosition() {
		fmt.Fprintf(&b, "%s:%d:%d: %s\n", d.Severity, d.Pos.Line, d.Pos.Col, d.Message)
	}
	return b.String()
}

// Compact renders a value as single-line JSON with no insignificant
// whitespace, the form used for copy-to-clipboard and tree detail payloads.
func Compact(v Value) string {
	var b strings.Builder
	writeCompact(&b, v)
	return b.String()
}

func writeCompact(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCompact(b, item)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range dedupeMembers(v.Members) {
			if i > 0 {
				b.WriteByte(',')
			}
			writeQuoted(b, m.Key)
			b.WriteByte(':')
			writeCompact(b, m.Value)
		}
		b.WriteByte('}')
	default:
		writeCanonical(b, v, 0)
	}
}

const indentUnit = "  "

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}

func writeCanonical(b *strings.Builder, v Value, depth int) {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(normalizeNumber(v.Number))
	case KindString:
		writeQuoted(b, v.Str)
	case KindArray:
		if len(v.Items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range v.Items {
			writeIndent(b, depth+1)
			writeCanonical(b, item, depth+1)
			if i < len(v.Items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	case KindObject:
		members := dedupeMembers(v.Members)
		if len(members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, m := range members {
			writeIndent(b, depth+1)
			writeQuoted(b, m.Key)
			b.WriteString(": ")
			writeCanonical(b, m.Value, depth+1)
			if i < len(members)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	}
}

// dedupeMembers applies the serialization-time last-one-wins policy: each key
// appears once, at its first-encounter position, with the value of its last
// occurrence. The parse-time model keeps every pair.
func dedupeMembers(members []Member) []Member {
	dup := false
	seen := make(map[string]int, len(members))
	for _, m := range members {
		seen[m.Key]++
		if seen[m.Key] > 1 {
			dup = true
		}
	}
	if !dup {
		return members
	}
	out := make([]Member, 0, len(members))
	at := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := at[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		at[m.Key] = len(out)
		out = append(out, m)
	}
	return out
}

// writeQuoted escapes using the same set the scanner accepts. '/' stays
// unescaped; valid UTF-8 passes through verbatim.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else if r == utf8.RuneError {
				b.WriteString(`�`)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

// normalizeNumber rewrites a lexically valid JSON number with minimal
// round-trippable precision: fraction trailing zeros dropped, an emptied
// fraction dropped, exponent sign/zero padding trimmed. The parsed digits are
// preserved, so re-parsing yields the same numeric value.
func normalizeNumber(text string) string {
	if text == "" {
		return "0"
	}
	rest := text
	neg := false
	if rest[0] == '-' {
		neg = true
		rest = rest[1:]
	}
	intPart := rest
	frac := ""
	exp := ""
	if i := strings.IndexAny(rest, "eE"); i >= 0 {
		exp = rest[i+1:]
		intPart = rest[:i]
	}
	if i := strings.IndexByte(intPart, '.'); i >= 0 {
		frac = intPart[i+1:]
		intPart = intPart[:i]
	}

	frac = strings.TrimRight(frac, "0")
	if exp != "" {
		expNeg := false
		switch exp[0] {
		case '+':
			exp = exp[1:]
		case '-':
			expNeg = true
			exp = exp[1:]
		}
		exp = strings.TrimLeft(exp, "0")
		if exp == "" {
			// e0 / e-0 are no-ops.
		} else if expNeg {
			exp = "-" + exp
		}
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	if exp != "" {
		b.WriteByte('e')
		b.WriteString(exp)
	}
	return b.String()
}
