// Package viewjson provides:
//
// - A tolerant JSON engine: tokenize/parse malformed input without aborting,
//   collecting position-tagged Diagnostics and recovering with Null
//   placeholders (Parse, Result)
// - A stable diagnostic model via Diagnostics (code, severity, line/column)
// - Canonical re-serialization or a line-oriented diagnostic report
//   (Serialize, SelectMode)
// - Front ends for files, JSONL and YAML plus a tree/preview projection for
//   viewers (ParseFile, ParseJSONL, ParseYAML, BuildTree)
//
// Design policy:
// - Keep only public APIs in the root package; put the scanner under internal/.
// - Place the CLI under cmd/viewjson and the C-shared boundary under
//   cmd/libviewjson.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	res := viewjson.Parse(input, viewjson.Options{})
//	out := viewjson.Serialize(res, viewjson.ModeAuto)
//
//	out := viewjson.ParseText(content, "clipboard", viewjson.Options{})
//	out := viewjson.ParseFile("config.json", viewjson.Options{})
package viewjson
