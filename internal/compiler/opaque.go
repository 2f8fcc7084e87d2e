package compiler

import (
	json "github.com/goccy/go-json"
)

// toOpaqueString replaces node with {type: "string", description: "<JSON-
// encoded instructions>"}, recording a json_string_parse codec entry at path.
// Shared by Pass 4 (plain "any object"/"anything" detection) and Pass 8
// (adaptive detection of shapes that survive Pass 4 but still can't be
// expressed), per spec §4.6/§4.10.
func toOpaqueString(ctx *Context, node Node, path string) map[string]any {
	ctx.Codec.JSONStringParse(path)
	encoded, err := json.Marshal(node)
	description := "Provide a JSON string that, when parsed, matches this original schema."
	if err == nil {
		description = "Provide a JSON string that, when parsed, conforms to this schema: " + string(encoded)
	}
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

// isAnyObjectOrAnything reports whether node is "any object" ({type:
// "object"} with no properties) or "anything at all" ({} / true), the Pass 4
// detection targets (spec §4.6).
func isAnyObjectOrAnything(node Node) bool {
	if b, ok := asBool(node); ok {
		return b // true = allow anything; false ("allow nothing") is left alone
	}
	m, ok := asMap(node)
	if !ok {
		return false
	}
	if len(m) == 0 {
		return true
	}
	types := normalizeType(m)
	if len(types) == 1 && types[0] == "object" {
		if _, hasProps := m["properties"]; !hasProps {
			if _, hasAP := m["additionalProperties"]; !hasAP {
				if _, hasPP := m["patternProperties"]; !hasPP {
					return true
				}
			}
		}
	}
	return false
}
