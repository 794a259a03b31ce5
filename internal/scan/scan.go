// Package scan turns raw JSON text into a stream of position-tagged tokens.
//
// The scanner never fails: malformed lexemes (bad escapes, unterminated
// strings, numbers outside the JSON grammar) are emitted as KindInvalid
// tokens carrying the reason, so the parser can report a contextual
// diagnostic and resynchronize instead of aborting.
package scan

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Position locates a byte in the input. Line and Col are 1-based; Col counts
// runes within the line.
type Position struct {
	Offset int
	Line   int
	Col    int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Kind enumerates lexical token kinds.
type Kind int

const (
	KindInvalid Kind = iota
	KindEOF
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindColon
	KindComma
	KindString
	KindNumber
	KindTrue
	KindFalse
	KindNull
)

var kindNames = map[Kind]string{
	KindInvalid:  "invalid token",
	KindEOF:      "end of input",
	KindLBrace:   "'{'",
	KindRBrace:   "'}'",
	KindLBracket: "'['",
	KindRBracket: "']'",
	KindColon:    "':'",
	KindComma:    "','",
	KindString:   "string",
	KindNumber:   "number",
	KindTrue:     "'true'",
	KindFalse:    "'false'",
	KindNull:     "'null'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown token"
}

// Token is one lexeme with its source span. For KindString, Str holds the
// decoded value. For KindInvalid, Reason explains what went wrong and Pos
// points at the offending byte rather than the token start.
type Token struct {
	Kind   Kind
	Lexeme string
	Str    string
	Pos    Position
	Reason string
}

// Options configures dialect tolerances. The zero value is standard JSON.
type Options struct {
	// Comments skips // line and /* */ block comments as whitespace.
	Comments bool
}

// Scanner walks the input left to right. Restartable only by constructing a
// new Scanner; Next after EOF keeps returning EOF.
type Scanner struct {
	src  string
	opt  Options
	off  int
	line int
	col  int
}

// New returns a Scanner over src.
func New(src string, opt Options) *Scanner {
	return &Scanner{src: src, opt: opt, line: 1, col: 1}
}

func (s *Scanner) pos() Position { return Position{Offset: s.off, Line: s.line, Col: s.col} }

func (s *Scanner) eof() bool { return s.off >= len(s.src) }

func (s *Scanner) peek() byte { return s.src[s.off] }

// advance consumes one rune, maintaining line/col accounting.
func (s *Scanner) advance() {
	c := s.src[s.off]
	if c == '\n' {
		s.off++
		s.line++
		s.col = 1
		return
	}
	if c < utf8.RuneSelf {
		s.off++
	} else {
		_, n := utf8.DecodeRuneInString(s.src[s.off:])
		s.off += n
	}
	s.col++
}

func (s *Scanner) skipBlanks() {
	for !s.eof() {
		switch c := s.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case s.opt.Comments && c == '/' && s.off+1 < len(s.src) && s.src[s.off+1] == '/':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		case s.opt.Comments && c == '/' && s.off+1 < len(s.src) && s.src[s.off+1] == '*':
			s.advance()
			s.advance()
			for !s.eof() {
				if s.peek() == '*' && s.off+1 < len(s.src) && s.src[s.off+1] == '/' {
					s.advance()
					s.advance()
					break
				}
				s.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token. The stream always terminates with KindEOF.
func (s *Scanner) Next() Token {
	s.skipBlanks()
	start := s.pos()
	if s.eof() {
		return Token{Kind: KindEOF, Pos: start}
	}

	switch c := s.peek(); c {
	case '{':
		s.advance()
		return Token{Kind: KindLBrace, Lexeme: "{", Pos: start}
	case '}':
		s.advance()
		return Token{Kind: KindRBrace, Lexeme: "}", Pos: start}
	case '[':
		s.advance()
		return Token{Kind: KindLBracket, Lexeme: "[", Pos: start}
	case ']':
		s.advance()
		return Token{Kind: KindRBracket, Lexeme: "]", Pos: start}
	case ':':
		s.advance()
		return Token{Kind: KindColon, Lexeme: ":", Pos: start}
	case ',':
		s.advance()
		return Token{Kind: KindComma, Lexeme: ",", Pos: start}
	case '"':
		return s.scanString(start)
	case 't':
		return s.scanKeyword(start, "true", KindTrue)
	case 'f':
		return s.scanKeyword(start, "false", KindFalse)
	case 'n':
		return s.scanKeyword(start, "null", KindNull)
	default:
		if c == '-' || (c >= '0' && c <= '9') {
			return s.scanNumber(start)
		}
		errPos := s.pos()
		s.advance()
		return Token{
			Kind:   KindInvalid,
			Lexeme: s.src[start.Offset:s.off],
			Pos:    errPos,
			Reason: fmt.Sprintf("unexpected character %q", s.src[start.Offset:s.off]),
		}
	}
}

func (s *Scanner) scanKeyword(start Position, word string, kind Kind) Token {
	if strings.HasPrefix(s.src[s.off:], word) {
		end := s.off + len(word)
		// A keyword must not run into an identifier tail ("nullx").
		if end >= len(s.src) || !isIdentByte(s.src[end]) {
			for i := 0; i < len(word); i++ {
				s.advance()
			}
			return Token{Kind: kind, Lexeme: word, Pos: start}
		}
	}
	for !s.eof() && isIdentByte(s.peek()) {
		s.advance()
	}
	lex := s.src[start.Offset:s.off]
	return Token{
		Kind:   KindInvalid,
		Lexeme: lex,
		Pos:    start,
		Reason: fmt.Sprintf("unrecognized literal %q", lex),
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// scanNumber accepts -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?. A
// numeric-looking run outside that grammar becomes a single Invalid token
// spanning the whole run.
func (s *Scanner) scanNumber(start Position) Token {
	bad := func(pos Position, reason string) Token {
		for !s.eof() && isNumberByte(s.peek()) {
			s.advance()
		}
		return Token{Kind: KindInvalid, Lexeme: s.src[start.Offset:s.off], Pos: pos, Reason: reason}
	}

	if s.peek() == '-' {
		s.advance()
		if s.eof() || s.peek() < '0' || s.peek() > '9' {
			return bad(start, "number has no digits after '-'")
		}
	}
	if s.peek() == '0' {
		s.advance()
		if !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
			return bad(start, "number has a leading zero")
		}
	} else {
		for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
			s.advance()
		}
	}
	if !s.eof() && s.peek() == '.' {
		dot := s.pos()
		s.advance()
		if s.eof() || s.peek() < '0' || s.peek() > '9' {
			return bad(dot, "number has no digits after decimal point")
		}
		for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
			s.advance()
		}
	}
	if !s.eof() && (s.peek() == 'e' || s.peek() == 'E') {
		exp := s.pos()
		s.advance()
		if !s.eof() && (s.peek() == '+' || s.peek() == '-') {
			s.advance()
		}
		if s.eof() || s.peek() < '0' || s.peek() > '9' {
			return bad(exp, "number has no digits in exponent")
		}
		for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
			s.advance()
		}
	}
	// A tail like "12abc" is one malformed run, not a number plus garbage.
	if !s.eof() && isIdentByte(s.peek()) {
		tail := s.pos()
		return bad(tail, "number has trailing garbage")
	}
	return Token{Kind: KindNumber, Lexeme: s.src[start.Offset:s.off], Pos: start}
}

func isNumberByte(c byte) bool {
	return c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E' || isIdentByte(c)
}

func (s *Scanner) scanString(start Position) Token {
	s.advance() // opening quote
	var b strings.Builder
	for {
		if s.eof() {
			return Token{
				Kind:   KindInvalid,
				Lexeme: s.src[start.Offset:s.off],
				Pos:    s.pos(),
				Reason: "unterminated string",
			}
		}
		c := s.peek()
		if c == '"' {
			s.advance()
			return Token{Kind: KindString, Lexeme: s.src[start.Offset:s.off], Str: b.String(), Pos: start}
		}
		if c == '\n' {
			return Token{
				Kind:   KindInvalid,
				Lexeme: s.src[start.Offset:s.off],
				Pos:    s.pos(),
				Reason: "unterminated string",
			}
		}
		if c < 0x20 {
			errPos := s.pos()
			s.advance()
			s.recoverString()
			return Token{
				Kind:   KindInvalid,
				Lexeme: s.src[start.Offset:s.off],
				Pos:    errPos,
				Reason: fmt.Sprintf("unescaped control character %#02x in string", c),
			}
		}
		if c != '\\' {
			r, n := utf8.DecodeRuneInString(s.src[s.off:])
			if r == utf8.RuneError && n == 1 {
				errPos := s.pos()
				s.advance()
				s.recoverString()
				return Token{
					Kind:   KindInvalid,
					Lexeme: s.src[start.Offset:s.off],
					Pos:    errPos,
					Reason: "invalid UTF-8 byte in string",
				}
			}
			b.WriteRune(r)
			s.advance()
			continue
		}

		escPos := s.pos()
		s.advance() // backslash
		if s.eof() {
			return Token{
				Kind:   KindInvalid,
				Lexeme: s.src[start.Offset:s.off],
				Pos:    escPos,
				Reason: "unterminated string",
			}
		}
		e := s.peek()
		s.advance()
		switch e {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r, ok := s.scanUnicodeEscape()
			if !ok {
				s.recoverString()
				return Token{
					Kind:   KindInvalid,
					Lexeme: s.src[start.Offset:s.off],
					Pos:    escPos,
					Reason: "invalid \\u escape in string",
				}
			}
			b.WriteRune(r)
		default:
			s.recoverString()
			return Token{
				Kind:   KindInvalid,
				Lexeme: s.src[start.Offset:s.off],
				Pos:    escPos,
				Reason: fmt.Sprintf("invalid escape character %q in string", string(e)),
			}
		}
	}
}

// scanUnicodeEscape consumes the 4 hex digits after \u, pairing UTF-16
// surrogates when a \uXXXX\uXXXX sequence forms one.
func (s *Scanner) scanUnicodeEscape() (rune, bool) {
	hi, ok := s.scanHex4()
	if !ok {
		return 0, false
	}
	if utf16.IsSurrogate(hi) {
		if strings.HasPrefix(s.src[s.off:], "\\u") {
			save := *s
			s.advance()
			s.advance()
			lo, ok := s.scanHex4()
			if ok {
				if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
					return r, true
				}
			}
			*s = save
		}
		return utf8.RuneError, true
	}
	return hi, true
}

func (s *Scanner) scanHex4() (rune, bool) {
	var r rune
	for i := 0; i < 4; i++ {
		if s.eof() {
			return 0, false
		}
		c := s.peek()
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, false
		}
		r = r<<4 | d
		s.advance()
	}
	return r, true
}

// recoverString skips ahead to the closing quote or end of line so one bad
// string yields one Invalid token instead of a cascade.
func (s *Scanner) recoverString() {
	for !s.eof() {
		c := s.peek()
		if c == '\n' {
			return
		}
		if c == '\\' {
			s.advance()
			if !s.eof() {
				s.advance()
			}
			continue
		}
		if c == '"' {
			s.advance()
			return
		}
		s.advance()
	}
}
