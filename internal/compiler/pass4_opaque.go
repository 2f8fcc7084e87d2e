package compiler

// Pass4Opaque replaces "any object" and "anything at all" schemas with an
// opaque JSON-string fallback (spec §4.6). Grounded on the fallback-to-
// generic-shape handling in the retrieved pack's OpenAI structured-output
// transform helper, which falls back to a string-carrying shape whenever it
// cannot confidently resolve a schema to something the target can express.
func Pass4Opaque(ctx *Context, node Node) (Node, error) {
	return DescendNode(ctx, node, Root, 0, func(n Node, path string) (Node, error) {
		if isAnyObjectOrAnything(n) {
			return toOpaqueString(ctx, n, path), nil
		}
		return n, nil
	})
}
