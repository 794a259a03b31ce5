package viewjson

import (
	"github.com/arjunguha/viewjson/i18n"
	"github.com/arjunguha/viewjson/internal/scan"
)

// Options bundles parsing options.
type Options struct {
	// Comments tolerates // line and /* */ block comments.
	Comments bool
	// MaxDepth caps container nesting; deeper subtrees are skipped and
	// replaced with null. Zero means unlimited.
	MaxDepth int
}

// Result is the outcome of one parse: the document model (nil when nothing
// could be parsed at all), the ordered diagnostics, and the logical source
// name used for reporting.
type Result struct {
	Value       *Value
	Diagnostics Diagnostics
	SourceName  string
	// Format records which front end produced the result (FormatJSON for the
	// tolerant engine, FormatJSONL/FormatYAML for those front ends).
	Format Format
}

// Parse runs the tolerant engine over input. It never fails: malformed input
// degrades into diagnostics plus Null placeholders, so the returned Result
// always has a complete value tree unless the input was empty.
func Parse(input string, opt Options) Result {
	p := &parser{
		sc:  scan.New(input, scan.Options{Comments: opt.Comments}),
		opt: opt,
	}
	p.next()
	if p.tok.Kind == scan.KindEOF {
		p.report(Error, CodeEmptyDocument, p.tok.Pos, false, nil)
		return Result{Diagnostics: p.diags, Format: FormatJSON}
	}
	v, _ := p.parseValue()
	if p.tok.Kind != scan.KindEOF {
		p.report(Error, CodeTrailingContent, p.tok.Pos, true, map[string]string{
			"found": p.tok.Kind.String(),
		})
	}
	return Result{Value: &v, Diagnostics: p.diags, Format: FormatJSON}
}

// parser is a recursive-descent consumer of the token stream with one
// lookahead token. Error recovery is an explicit outcome carried in each
// grammar-rule return value: (value, ok) where ok=false means at least one
// placeholder was substituted below this point.
type parser struct {
	sc    *scan.Scanner
	tok   scan.Token
	diags Diagnostics
	opt   Options
	depth int
}

func (p *parser) next() { p.tok = p.sc.Next() }

func (p *parser) report(sev Severity, code string, pos Position, recovered bool, data map[string]string) {
	p.diags = AppendDiagnostics(p.diags, Diagnostic{
		Severity:  sev,
		Code:      code,
		Message:   i18n.T(code, data),
		Pos:       pos,
		Recovered: recovered,
	})
}

func startsValue(k scan.Kind) bool {
	switch k {
	case scan.KindLBrace, scan.KindLBracket, scan.KindString, scan.KindNumber,
		scan.KindTrue, scan.KindFalse, scan.KindNull, scan.KindInvalid:
		return true
	}
	return false
}

// resync discards tokens until a safe point at the current nesting depth:
// ',', a closing '}' or ']', or EOF. Containers opened while skipping are
// consumed whole. The safe token itself is left in the lookahead.
func (p *parser) resync() {
	depth := 0
	for {
		switch p.tok.Kind {
		case scan.KindEOF:
			return
		case scan.KindLBrace, scan.KindLBracket:
			depth++
		case scan.KindRBrace, scan.KindRBracket:
			if depth == 0 {
				return
			}
			depth--
		case scan.KindComma:
			if depth == 0 {
				return
			}
		}
		p.next()
	}
}

// skipBalanced consumes the container starting at the current open token
// through its matching close, used when a subtree exceeds MaxDepth.
func (p *parser) skipBalanced() {
	depth := 0
	for {
		switch p.tok.Kind {
		case scan.KindEOF:
			return
		case scan.KindLBrace, scan.KindLBracket:
			depth++
		case scan.KindRBrace, scan.KindRBracket:
			depth--
			if depth <= 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

func (p *parser) parseValue() (Value, bool) {
	switch p.tok.Kind {
	case scan.KindLBrace:
		if v, stop := p.enter(); stop {
			return v, false
		}
		defer func() { p.depth-- }()
		return p.parseObject()
	case scan.KindLBracket:
		if v, stop := p.enter(); stop {
			return v, false
		}
		defer func() { p.depth-- }()
		return p.parseArray()
	case scan.KindString:
		v := String(p.tok.Str)
		p.next()
		return v, true
	case scan.KindNumber:
		v := NumberText(p.tok.Lexeme)
		p.next()
		return v, true
	case scan.KindTrue:
		p.next()
		return Boolean(true), true
	case scan.KindFalse:
		p.next()
		return Boolean(false), true
	case scan.KindNull:
		p.next()
		return Null(), true
	case scan.KindInvalid:
		p.report(Error, CodeInvalidToken, p.tok.Pos, true, map[string]string{
			"reason": p.tok.Reason,
		})
		p.next()
		return Null(), false
	default:
		p.report(Error, CodeUnexpectedToken, p.tok.Pos, true, map[string]string{
			"expected": "value",
			"found":    p.tok.Kind.String(),
		})
		p.resync()
		return Null(), false
	}
}

// enter applies the MaxDepth cap before descending into a container. When the
// cap is hit the whole subtree is skipped and replaced with null.
func (p *parser) enter() (Value, bool) {
	p.depth++
	if p.opt.MaxDepth > 0 && p.depth > p.opt.MaxDepth {
		p.report(Error, CodeMaxDepth, p.tok.Pos, true, nil)
		p.skipBalanced()
		p.depth--
		return Null(), true
	}
	return Value{}, false
}

func (p *parser) parseObject() (Value, bool) {
	p.next() // '{'
	ok := true
	var members []Member
	seen := make(map[string]bool)
	first := true
	for {
		if p.tok.Kind == scan.KindRBrace {
			p.next()
			return Object(members...), ok
		}
		if p.tok.Kind == scan.KindEOF {
			p.report(Error, CodeUnexpectedToken, p.tok.Pos, false, map[string]string{
				"expected": "'}'",
				"found":    p.tok.Kind.String(),
			})
			return Object(members...), false
		}
		if !first {
			switch {
			case p.tok.Kind == scan.KindComma:
				comma := p.tok.Pos
				p.next()
				if p.tok.Kind == scan.KindRBrace {
					p.report(Warning, CodeTrailingComma, comma, true, map[string]string{
						"found": p.tok.Kind.String(),
					})
					p.next()
					return Object(members...), ok
				}
			case p.tok.Kind == scan.KindString:
				p.report(Warning, CodeMissingComma, p.tok.Pos, true, map[string]string{
					"found": p.tok.Kind.String(),
				})
			default:
				p.report(Error, CodeUnexpectedToken, p.tok.Pos, true, map[string]string{
					"expected": "',' or '}'",
					"found":    p.tok.Kind.String(),
				})
				p.resync()
				ok = false
				// resync stops at ',', '}', ']' or EOF. A stray ']' here is
				// garbage; consume it so the loop always makes progress.
				if p.tok.Kind == scan.KindComma || p.tok.Kind == scan.KindRBracket {
					p.next()
				}
				if p.tok.Kind == scan.KindRBrace || p.tok.Kind == scan.KindEOF {
					continue
				}
				// Otherwise fall through to the next pair.
			}
		}

		key, keyPos, keyOK := p.parseKey()
		if !keyOK {
			ok = false
			if p.tok.Kind == scan.KindComma {
				p.next()
			}
			first = false
			continue
		}
		if seen[key] {
			p.report(Warning, CodeDuplicateKey, keyPos, true, map[string]string{
				"key": key,
			})
		}
		seen[key] = true

		if p.tok.Kind == scan.KindColon {
			p.next()
		} else {
			p.report(Error, CodeUnexpectedToken, p.tok.Pos, true, map[string]string{
				"expected": "':'",
				"found":    p.tok.Kind.String(),
			})
			ok = false
			if !startsValue(p.tok.Kind) {
				p.resync()
				members = append(members, Member{Key: key, Value: Null()})
				first = false
				continue
			}
			// Value follows immediately; recover as though the colon were there.
		}

		v, vok := p.parseValue()
		ok = ok && vok
		members = append(members, Member{Key: key, Value: v})
		first = false
	}
}

// parseKey consumes the member key, leaving the diagnostic position on the
// key token. On failure it resynchronizes past the broken pair.
func (p *parser) parseKey() (string, Position, bool) {
	pos := p.tok.Pos
	switch p.tok.Kind {
	case scan.KindString:
		key := p.tok.Str
		p.next()
		return key, pos, true
	case scan.KindInvalid:
		p.report(Error, CodeInvalidToken, p.tok.Pos, true, map[string]string{
			"reason": p.tok.Reason,
		})
		p.next()
		p.resync()
		return "", pos, false
	default:
		p.report(Error, CodeUnexpectedToken, p.tok.Pos, true, map[string]string{
			"expected": "object key",
			"found":    p.tok.Kind.String(),
		})
		p.resync()
		return "", pos, false
	}
}

func (p *parser) parseArray() (Value, bool) {
	p.next() // '['
	ok := true
	var items []Value
	first := true
	for {
		if p.tok.Kind == scan.KindRBracket {
			p.next()
			return Value{Kind: KindArray, Items: items}, ok
		}
		if p.tok.Kind == scan.KindEOF {
			p.report(Error, CodeUnexpectedToken, p.tok.Pos, false, map[string]string{
				"expected": "']'",
				"found":    p.tok.Kind.String(),
			})
			return Value{Kind: KindArray, Items: items}, false
		}
		if !first {
			switch {
			case p.tok.Kind == scan.KindComma:
				comma := p.tok.Pos
				p.next()
				if p.tok.Kind == scan.KindRBracket {
					p.report(Warning, CodeTrailingComma, comma, true, map[string]string{
						"found": p.tok.Kind.String(),
					})
					p.next()
					return Value{Kind: KindArray, Items: items}, ok
				}
			case startsValue(p.tok.Kind):
				p.report(Warning, CodeMissingComma, p.tok.Pos, true, map[string]string{
					"found": p.tok.Kind.String(),
				})
			default:
				p.report(Error, CodeUnexpectedToken, p.tok.Pos, true, map[string]string{
					"expected": "',' or ']'",
					"found":    p.tok.Kind.String(),
				})
				p.resync()
				ok = false
				// Same progress guarantee as objects: a stray '}' is consumed
				// as garbage.
				if p.tok.Kind == scan.KindComma || p.tok.Kind == scan.KindRBrace {
					p.next()
				}
				if p.tok.Kind == scan.KindRBracket || p.tok.Kind == scan.KindEOF {
					continue
				}
				// Otherwise fall through to the next element.
			}
		}

		v, vok := p.parseValue()
		ok = ok && vok
		items = append(items, v)
		first = false
	}
}
