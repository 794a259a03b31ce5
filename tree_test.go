package viewjson_test

import (
	"strings"
	"testing"

	viewjson "github.com/arjunguha/viewjson"
)

func TestBuildTree_SimpleObject(t *testing.T) {
	res := viewjson.Parse(`{"name": "value", "items": [1, 2]}`, viewjson.Options{})
	root := viewjson.BuildTree(*res.Value, "test.json")
	if root.Name != "test.json" || root.Path != "$" {
		t.Fatalf("root: %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected two children, got %d", len(root.Children))
	}
	items := root.Children[1]
	if items.Name != "items" || items.Preview != "Array[2]" {
		t.Fatalf("items node: %+v", items)
	}
	if len(items.Children) != 2 {
		t.Fatalf("items children: %+v", items.Children)
	}
	first := items.Children[0]
	if first.Name != "[0]" || first.Path != "$.items[0]" {
		t.Fatalf("first element node: %+v", first)
	}
}

func TestBuildTree_PathsQuoteOddKeys(t *testing.T) {
	res := viewjson.Parse(`{"weird key": 1}`, viewjson.Options{})
	root := viewjson.BuildTree(*res.Value, "x")
	if got := root.Children[0].Path; got != `$["weird key"]` {
		t.Fatalf("path: %q", got)
	}
}

func TestBuildJSONLTree(t *testing.T) {
	res := viewjson.ParseJSONL("{\"a\": 1}\n{\"b\": 2}", "data.jsonl", viewjson.Options{})
	root := viewjson.BuildJSONLTree(*res.Value, "data.jsonl")
	if root.Name != "data.jsonl (JSONL)" {
		t.Fatalf("root name: %q", root.Name)
	}
	if root.Preview != "2 objects" {
		t.Fatalf("root preview: %q", root.Preview)
	}
	if len(root.Children) != 2 || root.Children[0].Name != "Line 1" {
		t.Fatalf("children: %+v", root.Children)
	}
}

func TestFormatPreview(t *testing.T) {
	cases := []struct {
		name string
		v    viewjson.Value
		want string
	}{
		{"null", viewjson.Null(), "null"},
		{"bool", viewjson.Boolean(true), "true"},
		{"number", viewjson.NumberText("3.14"), "3.14"},
		{"short string", viewjson.String("hello"), `"hello"`},
		{"array", viewjson.Array(viewjson.NumberText("1"), viewjson.NumberText("2")), "Array[2]"},
		{"object", viewjson.Object(viewjson.Member{Key: "a", Value: viewjson.Null()}), "Object{1}"},
	}
	for _, tc := range cases {
		if got := viewjson.FormatPreview(tc.v); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatPreview_TruncatesLongStrings(t *testing.T) {
	long := strings.Repeat("a", 60)
	got := viewjson.FormatPreview(viewjson.String(long))
	if !strings.HasPrefix(got, `"`) || !strings.HasSuffix(got, `...`) {
		t.Fatalf("truncated preview: %q", got)
	}
	if strings.Count(got, "a") != 50 {
		t.Fatalf("expected 50 runes kept, got %q", got)
	}
}

func TestFormatLiteral(t *testing.T) {
	// Strings come out raw, containers as pretty JSON.
	if got := viewjson.FormatLiteral(viewjson.String("a\nb")); got != "a\nb" {
		t.Fatalf("string literal: %q", got)
	}
	res := viewjson.Parse(`{"a": 1}`, viewjson.Options{})
	got := viewjson.FormatLiteral(*res.Value)
	if !strings.Contains(got, "\"a\": 1") || strings.HasSuffix(got, "\n") {
		t.Fatalf("object literal: %q", got)
	}
}

func TestMarshalTree(t *testing.T) {
	res := viewjson.Parse(`{"a": 1}`, viewjson.Options{})
	out, err := viewjson.MarshalTree(viewjson.BuildTree(*res.Value, "t.json"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"name"`, `"preview"`, `"path"`, `"full_value"`, `"display_value"`, `"children"`} {
		if !strings.Contains(out, field) {
			t.Fatalf("missing %s in %s", field, out)
		}
	}
}
