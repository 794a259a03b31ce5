package scan

import "testing"

func collect(t *testing.T, src string, opt Options) []Token {
	t.Helper()
	s := New(src, opt)
	var toks []Token
	for i := 0; i < 10000; i++ {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
	t.Fatalf("scanner did not terminate for %q", src)
	return nil
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanner_SimpleDocument(t *testing.T) {
	toks := collect(t, `{"a": [1, true, null]}`, Options{})
	want := []Kind{
		KindLBrace, KindString, KindColon, KindLBracket, KindNumber,
		KindComma, KindTrue, KindComma, KindNull, KindRBracket, KindRBrace, KindEOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: got %d want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestScanner_Positions(t *testing.T) {
	toks := collect(t, "{\n  \"a\": 1\n}", Options{})
	// "a" starts at line 2, column 3.
	str := toks[1]
	if str.Kind != KindString {
		t.Fatalf("expected string token, got %v", str.Kind)
	}
	if str.Pos.Line != 2 || str.Pos.Col != 3 {
		t.Fatalf("string position: got %d:%d want 2:3", str.Pos.Line, str.Pos.Col)
	}
	rbrace := toks[len(toks)-2]
	if rbrace.Kind != KindRBrace || rbrace.Pos.Line != 3 || rbrace.Pos.Col != 1 {
		t.Fatalf("rbrace position: got %v at %d:%d", rbrace.Kind, rbrace.Pos.Line, rbrace.Pos.Col)
	}
}

func TestScanner_StringEscapes(t *testing.T) {
	toks := collect(t, `"a\n\t\"\\\/A😀"`, Options{})
	if toks[0].Kind != KindString {
		t.Fatalf("expected string, got %v (%s)", toks[0].Kind, toks[0].Reason)
	}
	want := "a\n\t\"\\/A\U0001F600"
	if toks[0].Str != want {
		t.Fatalf("decoded string: got %q want %q", toks[0].Str, want)
	}
}

func TestScanner_LoneSurrogate(t *testing.T) {
	toks := collect(t, `"\ud800"`, Options{})
	if toks[0].Kind != KindString {
		t.Fatalf("lone surrogate should decode to replacement rune, got %v", toks[0].Kind)
	}
	if toks[0].Str != "�" {
		t.Fatalf("got %q want replacement rune", toks[0].Str)
	}
}

func TestScanner_MalformedLexemes(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"leading zero", "0123"},
		{"trailing dot", "1."},
		{"bare minus", "-"},
		{"empty exponent", "1e"},
		{"number garbage tail", "12abc"},
		{"unterminated string", `"abc`},
		{"bad escape", `"a\qb"`},
		{"bad unicode escape", `"a\u00zz"`},
		{"unknown literal", "nil"},
		{"stray character", "@"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks := collect(t, tc.input, Options{})
			if toks[0].Kind != KindInvalid {
				t.Fatalf("expected invalid token, got %v", toks[0].Kind)
			}
			if toks[0].Reason == "" {
				t.Fatalf("invalid token should carry a reason")
			}
			if toks[len(toks)-1].Kind != KindEOF {
				t.Fatalf("stream must end with EOF")
			}
		})
	}
}

func TestScanner_MalformedNumberSpansRun(t *testing.T) {
	toks := collect(t, "[0123, 4]", Options{})
	if toks[1].Kind != KindInvalid {
		t.Fatalf("expected invalid token, got %v", toks[1].Kind)
	}
	if toks[1].Lexeme != "0123" {
		t.Fatalf("invalid lexeme should span the malformed run, got %q", toks[1].Lexeme)
	}
	if toks[2].Kind != KindComma || toks[3].Kind != KindNumber {
		t.Fatalf("scanner should resume after the malformed run: %v", kinds(toks))
	}
}

func TestScanner_CommentsOption(t *testing.T) {
	src := "// header\n{ /* inline */ \"a\": 1 }"
	toks := collect(t, src, Options{Comments: true})
	got := kinds(toks)
	want := []Kind{KindLBrace, KindString, KindColon, KindNumber, KindRBrace, KindEOF}
	if len(got) != len(want) {
		t.Fatalf("with comments on: got %v", got)
	}

	toks = collect(t, src, Options{})
	if toks[0].Kind != KindInvalid {
		t.Fatalf("comments off: expected invalid token for '/', got %v", toks[0].Kind)
	}
}

func TestScanner_EOFIsSticky(t *testing.T) {
	s := New("1", Options{})
	if tok := s.Next(); tok.Kind != KindNumber {
		t.Fatalf("expected number, got %v", tok.Kind)
	}
	for i := 0; i < 3; i++ {
		if tok := s.Next(); tok.Kind != KindEOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}
