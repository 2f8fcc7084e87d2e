package compiler

// asMap returns v as a schema object node, and whether the assertion held.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asSlice returns v as an ordered schema list (e.g. allOf/anyOf/prefixItems).
func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// asBool returns v as a boolean schema shorthand, and whether the assertion held.
func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// cloneMap makes a shallow-then-deep copy of a schema subtree so a pass can
// rewrite a node without mutating the value a sibling branch still holds (the
// same concern the teacher's Normalizer addresses when it inlines a $ref
// target: the resolved subtree must be copied, never aliased, because two
// sibling branches may resolve the same pointer to independently-rewritten
// shapes — e.g. one inlined further, the other left opaque by Pass 5).
func cloneMap(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = cloneMap(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = cloneMap(val)
		}
		return out
	default:
		return x
	}
}

// normalizeType returns a node's "type" keyword as a slice of strings,
// whether it was declared as a single string, a string array, or absent.
func normalizeType(m map[string]any) []string {
	switch t := m["type"].(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// stringSet builds a set from a schema array-of-strings keyword (e.g. required).
func stringSet(v any) map[string]struct{} {
	out := map[string]struct{}{}
	s, ok := asSlice(v)
	if !ok {
		return out
	}
	for _, item := range s {
		if str, ok := item.(string); ok {
			out[str] = struct{}{}
		}
	}
	return out
}

// toFloat64 extracts a numeric keyword value regardless of whether decoding
// produced a float64, an int, or a json.Number (UseNumber decoding mode),
// mirroring schemaprofile/helpers.go's toFloat64 in the teacher.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case jsonNumber:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// jsonNumber is the subset of json.Number's interface toFloat64 needs,
// avoiding an import of encoding/json purely for this helper's type switch.
type jsonNumber interface {
	Float64() (float64, error)
}
