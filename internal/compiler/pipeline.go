package compiler

// Run dispatches the nine passes in order over root, short-circuiting on the
// first error. Pass 0 sets ctx.Root to the draft-migrated tree and then
// resolves $ref against it — every later pass that still needs to resolve a
// pointer (Pass 5, for the cyclic refs Pass 0 left intact) reads that same
// migrated ctx.Root rather than the original unmigrated input.
func Run(ctx *Context, root Node) (Node, error) {
	passes := []func(*Context, Node) (Node, error){
		Pass0Normalize,
		Pass1AllOf,
		Pass2Polymorphism,
		Pass3Dictionary,
		Pass4Opaque,
		Pass5Recursion,
		Pass6Strict,
		Pass7Prune,
		Pass8Adaptive,
		Pass9Provider,
	}

	node := root
	for _, pass := range passes {
		next, err := pass(ctx, node)
		if err != nil {
			return nil, err
		}
		node = next
	}
	return node, nil
}
