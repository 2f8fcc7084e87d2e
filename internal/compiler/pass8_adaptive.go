package compiler

// Pass8Adaptive catches the shapes that survive Pass 4's blunt "any
// object"/"anything" detection but still can't be expressed in the target's
// constrained subset (spec §4.10): a closed tuple (prefixItems paired with
// items: false), a contains clause (existential, not expressible as a closed
// shape), and an enum whose members are themselves objects. Each match
// becomes an opaque JSON-string fallback via the same toOpaqueString used by
// Pass 4 and Pass 5.
func Pass8Adaptive(ctx *Context, node Node) (Node, error) {
	return Descend(ctx, node, Root, 0, func(m map[string]any, path string) (map[string]any, error) {
		if needsAdaptiveOpaque(m) {
			return toOpaqueString(ctx, m, path), nil
		}
		return m, nil
	})
}

func needsAdaptiveOpaque(m map[string]any) bool {
	if isClosedTuple(m) {
		return true
	}
	if _, hasContains := m["contains"]; hasContains {
		return true
	}
	if isObjectEnum(m) {
		return true
	}
	return false
}

func isClosedTuple(m map[string]any) bool {
	if _, hasPrefix := m["prefixItems"]; !hasPrefix {
		return false
	}
	closed, isBool := asBool(m["items"])
	return isBool && !closed
}

func isObjectEnum(m map[string]any) bool {
	list, ok := asSlice(m["enum"])
	if !ok || len(list) == 0 {
		return false
	}
	for _, v := range list {
		if _, isObj := asMap(v); !isObj {
			return false
		}
	}
	return true
}
