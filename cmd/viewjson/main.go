// Command viewjson runs the tolerant JSON engine from the shell: it parses a
// file (or stdin) and prints canonical JSON, a diagnostic report, or the tree
// projection used by viewer hosts.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	viewjson "github.com/arjunguha/viewjson"
	"github.com/arjunguha/viewjson/i18n"
)

func main() {
	fs := flag.NewFlagSet("viewjson", flag.ExitOnError)
	var (
		mode     string
		format   string
		tree     bool
		comments bool
		maxDepth int
		lang     string
	)
	fs.StringVar(&mode, "mode", "auto", "output mode: auto, canonical or report")
	fs.StringVar(&format, "format", "", "input format: json, jsonl, yaml or auto (default: by extension)")
	fs.BoolVar(&tree, "tree", false, "print the tree projection instead of canonical output")
	fs.BoolVar(&comments, "comments", false, "tolerate // and /* */ comments")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum container nesting (0 = unlimited)")
	fs.StringVar(&lang, "lang", "en", "diagnostic message language (en or ja)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: viewjson [flags] <file|->")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	i18n.SetLanguage(lang)
	opt := viewjson.Options{Comments: comments, MaxDepth: maxDepth}

	path := fs.Arg(0)
	content, name, err := readInput(path)
	if err != nil {
		fmt.Fprint(os.Stderr, viewjson.ErrorReport(viewjson.CodeIOError, err.Error()))
		os.Exit(1)
	}

	res := viewjson.ParseContent(content, name, resolveFormat(format, path), opt)

	if tree {
		root := buildTree(res, name)
		out, err := viewjson.MarshalTree(root)
		if err != nil {
			fatalf("encoding tree: %v", err)
		}
		fmt.Print(out)
		exitOn(res)
	}

	m := viewjson.ModeAuto
	switch mode {
	case "auto":
	case "canonical":
		m = viewjson.ModeCanonical
	case "report":
		m = viewjson.ModeReport
	default:
		fatalf("unknown mode %q", mode)
	}
	fmt.Print(viewjson.Serialize(res, m))
	exitOn(res)
}

func readInput(path string) (content, name string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func resolveFormat(flagValue, path string) viewjson.Format {
	switch flagValue {
	case "json":
		return viewjson.FormatJSON
	case "jsonl":
		return viewjson.FormatJSONL
	case "yaml":
		return viewjson.FormatYAML
	case "auto":
		return viewjson.FormatAuto
	case "":
		if path == "-" {
			return viewjson.FormatAuto
		}
		return viewjson.DetectFormat(path)
	default:
		fatalf("unknown format %q", flagValue)
		return viewjson.FormatAuto
	}
}

func buildTree(res viewjson.Result, name string) viewjson.TreeNode {
	display := name
	if name != "stdin" {
		display = filepath.Base(name)
	}
	if res.Value == nil {
		return viewjson.BuildTree(viewjson.Null(), display)
	}
	if res.Format == viewjson.FormatJSONL {
		return viewjson.BuildJSONLTree(*res.Value, display)
	}
	return viewjson.BuildTree(*res.Value, display)
}

func exitOn(res viewjson.Result) {
	if res.Diagnostics.HasError() {
		os.Exit(1)
	}
	os.Exit(0)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
