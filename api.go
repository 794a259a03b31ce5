package viewjson

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arjunguha/viewjson/i18n"
)

// Format identifies how input text is interpreted.
type Format int

const (
	// FormatAuto tries JSON/JSONL first, then YAML (the original viewer
	// behavior for clipboard content and unknown extensions).
	FormatAuto Format = iota
	FormatJSON
	FormatJSONL
	FormatYAML
)

// DetectFormat maps a file extension to a Format. Unknown extensions fall
// back to content auto-detection.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".jsonl":
		return FormatJSONL
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// ParseText runs the tolerant JSON pipeline over content and serializes the
// outcome with ModeAuto: canonical JSON when the input was clean or merely
// sloppy, a diagnostic report when any finding is an Error. This is the
// contract behind the boundary's parse_text entry point.
func ParseText(content, name string, opt Options) string {
	res := Parse(content, opt)
	res.SourceName = name
	return Serialize(res, ModeAuto)
}

// ParseFile reads path fully into memory and behaves as ParseText with the
// path as the source name. Read failures (missing file, permissions, non-UTF8
// content) degrade to a single-line Error report, never a crash.
func ParseFile(path string, opt Options) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrorReport(CodeIOError, err.Error())
	}
	if !utf8.Valid(data) {
		return ErrorReport(CodeIOError, "file is not valid UTF-8")
	}
	return ParseText(string(data), path, opt)
}

// ParseContent parses content according to format into a Result, without
// serializing. FormatAuto picks JSONL when every non-empty line of a
// multi-line input is strictly valid JSON, otherwise parses as tolerant JSON,
// falling back to YAML when the JSON parse failed but the content is valid
// YAML.
func ParseContent(content, name string, format Format, opt Options) Result {
	switch format {
	case FormatJSON:
		res := Parse(content, opt)
		res.SourceName = name
		return res
	case FormatJSONL:
		return ParseJSONL(content, name, opt)
	case FormatYAML:
		return ParseYAML(content, name)
	default:
		if LooksLikeJSONL(content) {
			return ParseJSONL(content, name, opt)
		}
		res := Parse(content, opt)
		res.SourceName = name
		if res.Diagnostics.HasError() {
			if yres := ParseYAML(content, name); !yres.Diagnostics.HasError() {
				return yres
			}
		}
		return res
	}
}

// ErrorReport renders a single-entry diagnostic report of severity Error for
// failures that happen before tokenization (I/O, internal faults).
func ErrorReport(code, detail string) string {
	return RenderReport(Diagnostics{{
		Severity: Error,
		Code:     code,
		Message:  i18n.T(code, map[string]string{"error": detail}),
		Pos:      Position{Offset: 0, Line: 1, Col: 1},
	}})
}
