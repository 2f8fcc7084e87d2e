package compiler

// Pass2Polymorphism rewrites every oneOf to anyOf, preserving the ordered
// variant list (spec §4.4). discriminator metadata passes through untouched.
// No codec entry: this rewrite is semantically lossless for generation — the
// "exactly one" constraint oneOf encodes is unenforceable during a
// token-stream generation regardless of which keyword names it.
func Pass2Polymorphism(ctx *Context, node Node) (Node, error) {
	return Descend(ctx, node, Root, 0, rewriteOneOfToAnyOf)
}

func rewriteOneOfToAnyOf(m map[string]any, path string) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	oneOf, has := out["oneOf"]
	if !has {
		return out, nil
	}
	oneOfSlice, _ := asSlice(oneOf)
	if anyOfExisting, hasAnyOf := out["anyOf"]; hasAnyOf {
		anyOfSlice, _ := asSlice(anyOfExisting)
		out["anyOf"] = append(append([]any{}, anyOfSlice...), oneOfSlice...)
	} else {
		out["anyOf"] = oneOfSlice
	}
	delete(out, "oneOf")
	return out, nil
}
