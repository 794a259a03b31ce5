package viewjson

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arjunguha/viewjson/i18n"
)

// ParseYAML converts YAML content into the same document model the JSON
// engine produces. yaml.Node keeps mapping keys in encounter order and
// carries line/column, so positions and ordering survive the conversion.
// Decode errors degrade to an Error diagnostic, never a crash or an error
// return.
func ParseYAML(content, name string) Result {
	out := Result{SourceName: name, Format: FormatYAML}
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(content), &root); err != nil {
		out.Diagnostics = AppendDiagnostics(out.Diagnostics, Diagnostic{
			Severity: Error,
			Code:     CodeInvalidYAML,
			Message:  i18n.T(CodeInvalidYAML, map[string]string{"error": err.Error()}),
			Pos:      Position{Offset: 0, Line: 1, Col: 1},
		})
		return out
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		out.Diagnostics = AppendDiagnostics(out.Diagnostics, Diagnostic{
			Severity: Error,
			Code:     CodeEmptyDocument,
			Message:  i18n.T(CodeEmptyDocument, nil),
			Pos:      Position{Offset: 0, Line: 1, Col: 1},
		})
		return out
	}
	c := yamlConverter{diags: &out.Diagnostics}
	v := c.value(firstDocument(&root), 0)
	out.Value = &v
	return out
}

func firstDocument(root *yaml.Node) *yaml.Node {
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		return root.Content[0]
	}
	return root
}

type yamlConverter struct {
	diags *Diagnostics
}

// aliasDepthLimit bounds alias expansion; yaml.v3 rejects true cycles but
// deeply chained anchors are still cheap to cap.
const aliasDepthLimit = 64

func (c yamlConverter) value(n *yaml.Node, depth int) Value {
	if n == nil || depth > aliasDepthLimit {
		return Null()
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null()
		}
		return c.value(n.Content[0], depth+1)
	case yaml.AliasNode:
		return c.value(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, c.value(item, depth+1))
		}
		return Value{Kind: KindArray, Items: items}
	case yaml.MappingNode:
		members := make([]Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			members = append(members, Member{
				Key:   key.Value,
				Value: c.value(n.Content[i+1], depth+1),
			})
		}
		return Value{Kind: KindObject, Members: members}
	case yaml.ScalarNode:
		return c.scalar(n)
	default:
		return Null()
	}
}

func (c yamlConverter) scalar(n *yaml.Node) Value {
	switch n.Tag {
	case "!!null":
		return Null()
	case "!!bool":
		return Boolean(n.Value == "true" || n.Value == "True" || n.Value == "TRUE")
	case "!!int", "!!float":
		return yamlNumber(n.Value)
	default:
		return String(n.Value)
	}
}

// yamlNumber keeps the scalar text when it already satisfies the JSON number
// grammar; YAML-only spellings (hex, octal, underscores, .inf/.nan) are
// re-rendered through strconv, or kept as strings when JSON cannot represent
// them.
func yamlNumber(text string) Value {
	res := Parse(text, Options{})
	if !res.Diagnostics.HasError() && res.Value != nil && res.Value.Kind == KindNumber {
		return NumberText(text)
	}
	cleaned := strings.ReplaceAll(text, "_", "")
	if i, err := strconv.ParseInt(cleaned, 0, 64); err == nil {
		return NumberText(strconv.FormatInt(i, 10))
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return NumberText(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return String(text)
}
