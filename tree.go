package viewjson

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// TreeNode is the viewer projection of a value: one row per node with a
// display name, short preview, JSONPath, and the compact/literal renderings
// used by detail panes.
type TreeNode struct {
	Name         string     `json:"name"`
	Preview      string     `json:"preview"`
	Path         string     `json:"path"`
	FullValue    string     `json:"full_value"`
	DisplayValue string     `json:"display_value"`
	Children     []TreeNode `json:"children"`
}

// BuildTree projects a single document onto a tree rooted at displayName,
// with "$" as the root path.
func BuildTree(v Value, displayName string) TreeNode {
	return nodeFromValue(displayName, "$", v)
}

// BuildJSONLTree projects a JSONL result (an array of per-line values) onto a
// tree with one "Line N" child per input line.
func BuildJSONLTree(lines Value, displayName string) TreeNode {
	count := len(lines.Items)
	root := TreeNode{
		Name:         fmt.Sprintf("%s (JSONL)", displayName),
		Preview:      fmt.Sprintf("%d objects", count),
		Path:         displayName,
		FullValue:    fmt.Sprintf(`{"lines":%d}`, count),
		DisplayValue: fmt.Sprintf("{\n  \"lines\": %d\n}", count),
	}
	for i, line := range lines.Items {
		path := BuildArrayPath(displayName, i)
		child := nodeFromValue(fmt.Sprintf("Line %d", i+1), path, line)
		root.Children = append(root.Children, child)
	}
	return root
}

func nodeFromValue(name, path string, v Value) TreeNode {
	node := TreeNode{
		Name:         name,
		Preview:      FormatPreview(v),
		Path:         path,
		FullValue:    Compact(v),
		DisplayValue: FormatLiteral(v),
	}
	switch v.Kind {
	case KindObject:
		for _, m := range v.Members {
			childPath := BuildObjectPath(path, m.Key)
			node.Children = append(node.Children, nodeFromValue(m.Key, childPath, m.Value))
		}
	case KindArray:
		for i, item := range v.Items {
			childPath := BuildArrayPath(path, i)
			node.Children = append(node.Children, nodeFromValue(fmt.Sprintf("[%d]", i), childPath, item))
		}
	}
	return node
}

// MarshalTree encodes a tree as indented JSON for hosts that consume the
// viewer projection.
func MarshalTree(root TreeNode) (string, error) {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
