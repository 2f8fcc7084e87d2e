package compiler

import (
	"strconv"
	"strings"
)

// resolveJSONPointer walks a root-relative pointer ("#/$defs/Foo/properties/bar")
// against root, manually unescaping ~1 and ~0 per RFC 6901. Grounded on
// schemaprofile/helpers.go's resolveJSONPointer in the teacher.
func resolveJSONPointer(root Node, pointer string) (Node, bool) {
	if pointer == "" || pointer == Root {
		return root, true
	}
	if !strings.HasPrefix(pointer, "#/") {
		return nil, false
	}
	cur := root
	for _, raw := range strings.Split(pointer[2:], "/") {
		tok := unescapePointerToken(raw)
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[tok]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, false
			}
			cur = c[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func unescapePointerToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

