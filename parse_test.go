package viewjson_test

import (
	"strings"
	"testing"

	viewjson "github.com/arjunguha/viewjson"
)

func mustParse(t *testing.T, input string) viewjson.Result {
	t.Helper()
	res := viewjson.Parse(input, viewjson.Options{})
	if res.Value == nil {
		t.Fatalf("expected a value tree for %q, diagnostics: %v", input, res.Diagnostics)
	}
	return res
}

func countSeverity(ds viewjson.Diagnostics, sev viewjson.Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func TestParse_WellFormed(t *testing.T) {
	res := mustParse(t, `{"name": "test", "items": [1, 2.5, true, null]}`)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics)
	}
	v := *res.Value
	if v.Kind != viewjson.KindObject || v.Len() != 2 {
		t.Fatalf("unexpected tree: %+v", v)
	}
	items, ok := v.Get("items")
	if !ok || items.Kind != viewjson.KindArray || items.Len() != 4 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items.Items[1].Number != "2.5" {
		t.Fatalf("number text not preserved: %q", items.Items[1].Number)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		res := viewjson.Parse(input, viewjson.Options{})
		if res.Value != nil {
			t.Fatalf("empty input should yield no value, got %+v", *res.Value)
		}
		if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != viewjson.CodeEmptyDocument {
			t.Fatalf("expected single empty_document error, got %v", res.Diagnostics)
		}
		if res.Diagnostics[0].Severity != viewjson.Error {
			t.Fatalf("empty_document must be an Error")
		}
	}
}

func TestParse_DuplicateKeysRetained(t *testing.T) {
	res := mustParse(t, `{"a":1,"a":2}`)
	if res.Diagnostics.HasError() {
		t.Fatalf("duplicate keys must not be an error: %v", res.Diagnostics)
	}
	if n := countSeverity(res.Diagnostics, viewjson.Warning); n != 1 {
		t.Fatalf("expected one warning, got %v", res.Diagnostics)
	}
	if res.Diagnostics[0].Code != viewjson.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key, got %s", res.Diagnostics[0].Code)
	}
	v := *res.Value
	if v.Len() != 2 || v.Members[0].Key != "a" || v.Members[1].Key != "a" {
		t.Fatalf("both pairs must be retained in encounter order: %+v", v.Members)
	}
	if v.Members[0].Value.Number != "1" || v.Members[1].Value.Number != "2" {
		t.Fatalf("pair values wrong: %+v", v.Members)
	}
}

func TestParse_TrailingComma(t *testing.T) {
	res := mustParse(t, `[1,2,]`)
	if res.Diagnostics.HasError() {
		t.Fatalf("trailing comma must be a warning: %v", res.Diagnostics)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != viewjson.CodeTrailingComma {
		t.Fatalf("expected one trailing_comma warning, got %v", res.Diagnostics)
	}
	if res.Value.Len() != 2 {
		t.Fatalf("expected two elements, got %d", res.Value.Len())
	}
}

func TestParse_TrailingCommaInObject(t *testing.T) {
	res := mustParse(t, `{"a":1,}`)
	if res.Diagnostics.HasError() {
		t.Fatalf("trailing comma must be a warning: %v", res.Diagnostics)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != viewjson.CodeTrailingComma {
		t.Fatalf("expected trailing_comma, got %v", res.Diagnostics)
	}
}

func TestParse_MissingComma(t *testing.T) {
	res := mustParse(t, `[1 2]`)
	if res.Diagnostics.HasError() {
		t.Fatalf("missing comma must be a warning: %v", res.Diagnostics)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != viewjson.CodeMissingComma {
		t.Fatalf("expected missing_comma, got %v", res.Diagnostics)
	}
	if res.Value.Len() != 2 {
		t.Fatalf("expected two elements, got %d", res.Value.Len())
	}

	res = mustParse(t, `{"a":1 "b":2}`)
	if res.Diagnostics.HasError() || len(res.Diagnostics) != 1 {
		t.Fatalf("object missing comma: %v", res.Diagnostics)
	}
	if res.Value.Len() != 2 {
		t.Fatalf("expected both members, got %d", res.Value.Len())
	}
}

func TestParse_MissingValueRecoversAsNull(t *testing.T) {
	res := mustParse(t, `{"a": }`)
	if !res.Diagnostics.HasError() {
		t.Fatalf("expected an error diagnostic")
	}
	d := res.Diagnostics[0]
	if d.Code != viewjson.CodeUnexpectedToken {
		t.Fatalf("expected unexpected_token, got %s", d.Code)
	}
	// The '}' sits at column 7 of line 1.
	if d.Pos.Line != 1 || d.Pos.Col != 7 {
		t.Fatalf("diagnostic should point at '}', got %d:%d", d.Pos.Line, d.Pos.Col)
	}
	if !strings.Contains(d.Message, "expected value") || !strings.Contains(d.Message, "'}'") {
		t.Fatalf("message should describe expected vs found: %q", d.Message)
	}
	v := *res.Value
	got, ok := v.Get("a")
	if !ok || got.Kind != viewjson.KindNull {
		t.Fatalf("pair value must recover as null, got %+v", got)
	}
}

func TestParse_UnbalancedBraces(t *testing.T) {
	res := mustParse(t, `{"a": [1, 2}`)
	if !res.Diagnostics.HasError() {
		t.Fatalf("structural violation must produce an Error, got %v", res.Diagnostics)
	}
	if res.Value.Kind != viewjson.KindObject {
		t.Fatalf("parser must still produce a complete tree, got %v", res.Value.Kind)
	}
}

func TestParse_InvalidTokenRecovery(t *testing.T) {
	res := mustParse(t, `{"a": 0123, "b": 2}`)
	if !res.Diagnostics.HasError() {
		t.Fatalf("expected invalid_token error")
	}
	if res.Diagnostics[0].Code != viewjson.CodeInvalidToken {
		t.Fatalf("expected invalid_token, got %s", res.Diagnostics[0].Code)
	}
	v := *res.Value
	if a, _ := v.Get("a"); a.Kind != viewjson.KindNull {
		t.Fatalf("malformed number should recover as null, got %+v", a)
	}
	if b, ok := v.Get("b"); !ok || b.Number != "2" {
		t.Fatalf("parsing must continue past the bad pair, got %+v", b)
	}
}

func TestParse_ResyncSkipsNestedGarbage(t *testing.T) {
	// The broken pair contains a whole nested object that must be skipped as
	// one unit before parsing resumes at "c".
	res := mustParse(t, `{"a": ] {"x": 1}, "c": 3}`)
	if !res.Diagnostics.HasError() {
		t.Fatalf("expected error diagnostics")
	}
	if c, ok := res.Value.Get("c"); !ok || c.Number != "3" {
		t.Fatalf("parser should resynchronize and parse \"c\", got %+v (diags %v)", res.Value, res.Diagnostics)
	}
}

func TestParse_TrailingContent(t *testing.T) {
	res := mustParse(t, `{"a":1} []`)
	if !res.Diagnostics.HasError() {
		t.Fatalf("expected trailing_content error")
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == viewjson.CodeTrailingContent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected trailing_content, got %v", res.Diagnostics)
	}
}

func TestParse_MaxDepth(t *testing.T) {
	res := viewjson.Parse(`{"a": [[[[1]]]]}`, viewjson.Options{MaxDepth: 3})
	if !res.Diagnostics.HasError() {
		t.Fatalf("expected max_depth error")
	}
	if res.Diagnostics[0].Code != viewjson.CodeMaxDepth {
		t.Fatalf("expected max_depth, got %s", res.Diagnostics[0].Code)
	}
	// Containers up to depth 3 survive; the fourth level collapses to null.
	a, ok := res.Value.Get("a")
	if !ok || a.Kind != viewjson.KindArray {
		t.Fatalf("expected array at \"a\", got %+v", a)
	}
	inner := a.Items[0]
	if inner.Kind != viewjson.KindArray || inner.Items[0].Kind != viewjson.KindNull {
		t.Fatalf("expected [null] placeholder at depth 3, got %+v", inner)
	}
}

func TestParse_DiagnosticsOrderedByEncounter(t *testing.T) {
	res := mustParse(t, `{"a": , "b": }`)
	if len(res.Diagnostics) < 2 {
		t.Fatalf("expected two diagnostics, got %v", res.Diagnostics)
	}
	if res.Diagnostics[0].Pos.Offset > res.Diagnostics[1].Pos.Offset {
		t.Fatalf("diagnostics must be in encounter order: %v", res.Diagnostics)
	}
}

func TestParse_CommentsOption(t *testing.T) {
	src := "// hello\n{\"a\": 1}"
	res := viewjson.Parse(src, viewjson.Options{Comments: true})
	if len(res.Diagnostics) != 0 {
		t.Fatalf("comments enabled: expected clean parse, got %v", res.Diagnostics)
	}
	res = viewjson.Parse(src, viewjson.Options{})
	if !res.Diagnostics.HasError() {
		t.Fatalf("comments disabled: expected errors")
	}
}

func TestDiagnostics_ErrorSummary(t *testing.T) {
	ds := viewjson.Diagnostics{
		{Code: viewjson.CodeUnexpectedToken, Pos: viewjson.Position{Line: 1, Col: 2}},
		{Code: viewjson.CodeTrailingComma, Pos: viewjson.Position{Line: 2, Col: 1}},
		{Code: viewjson.CodeMissingComma, Pos: viewjson.Position{Line: 3, Col: 1}},
		{Code: viewjson.CodeDuplicateKey, Pos: viewjson.Position{Line: 4, Col: 1}},
	}
	s := ds.Error()
	if s == "" || !strings.Contains(s, "total 4") {
		t.Fatalf("unexpected summary: %q", s)
	}
	var err error = ds
	got, ok := viewjson.AsDiagnostics(err)
	if !ok || len(got) != 4 {
		t.Fatalf("AsDiagnostics failed: %v %v", got, ok)
	}
}
