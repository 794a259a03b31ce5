package viewjson

import (
	"fmt"
	"strconv"
)

// BuildObjectPath appends an object key to a JSONPath-style path: plain keys
// become `.key`, anything else is bracketed and quoted.
func BuildObjectPath(parent, key string) string {
	if isPlainKey(key) {
		return parent + "." + key
	}
	return parent + "[" + strconv.Quote(key) + "]"
}

// BuildArrayPath appends an array index to a JSONPath-style path.
func BuildArrayPath(parent string, index int) string {
	return fmt.Sprintf("%s[%d]", parent, index)
}

func isPlainKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
