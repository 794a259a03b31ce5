package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for diagnostic codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "found"); occurrences of {key} in the template are replaced
// with data["key"].
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "unexpected_token":
			tmpl = "{expected} が必要ですが {found} が見つかりました"
		case "invalid_token":
			tmpl = "不正なトークン: {reason}"
		case "trailing_comma":
			tmpl = "末尾のカンマ"
		case "missing_comma":
			tmpl = "{found} の前にカンマがありません"
		case "duplicate_key":
			tmpl = "キー {key} が重複しています"
		case "empty_document":
			tmpl = "ドキュメントが空です"
		case "trailing_content":
			tmpl = "トップレベル値の後に余分な内容があります"
		case "max_depth":
			tmpl = "ネストが深すぎます"
		case "io_error":
			tmpl = "{error}"
		case "invalid_yaml":
			tmpl = "YAML が不正です: {error}"
		case "internal_error":
			tmpl = "内部エラー: {error}"
		}
	default: // "en"
		switch code {
		case "unexpected_token":
			tmpl = "expected {expected}, found {found}"
		case "invalid_token":
			tmpl = "{reason}"
		case "trailing_comma":
			tmpl = "trailing comma"
		case "missing_comma":
			tmpl = "missing comma before {found}"
		case "duplicate_key":
			tmpl = "duplicate key {key}"
		case "empty_document":
			tmpl = "empty document"
		case "trailing_content":
			tmpl = "unexpected content after top-level value"
		case "max_depth":
			tmpl = "nesting too deep"
		case "io_error":
			tmpl = "{error}"
		case "invalid_yaml":
			tmpl = "invalid YAML: {error}"
		case "internal_error":
			tmpl = "internal error: {error}"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
