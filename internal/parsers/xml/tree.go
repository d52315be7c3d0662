package xml

import (
	"fmt"
	"strings"
)

// Lookup navigates a dot-notation path through a generic tree. Each segment
// is matched exactly first, then case-insensitively (feeds disagree about
// element casing).
func Lookup(node map[string]interface{}, path string) (interface{}, bool) {
	var current interface{} = node
	for _, part := range strings.Split(path, ".") {
		if s, ok := current.([]interface{}); ok && len(s) > 0 {
			current = s[0]
		}
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			for k, v := range m {
				if strings.EqualFold(k, part) {
					current, ok = v, true
					break
				}
			}
		}
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Text extracts the string content of a tree value. Maps yield their "#text"
// entry; anything else is stringified. Returns false for empty content.
func Text(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed, trimmed != ""
	case map[string]interface{}:
		if inner, ok := v[TextKey]; ok {
			return Text(inner)
		}
		return "", false
	case []interface{}:
		if len(v) > 0 {
			return Text(v[0])
		}
		return "", false
	default:
		trimmed := strings.TrimSpace(fmt.Sprintf("%v", v))
		return trimmed, trimmed != ""
	}
}

// AsSlice normalizes a tree value into a slice of nodes, wrapping a single
// node as a one-element slice.
func AsSlice(value interface{}) []interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case []interface{}:
		return v
	default:
		return []interface{}{v}
	}
}
