package compiler

import "github.com/jsonschema-llm/llmschema/schemaerr"

// Pass5Recursion inlines the $ref nodes Pass 0 left intact (genuine cycles)
// up to Opts.RecursionLimit per branch, using the same per-branch counter
// described in §4.2; beyond the limit a ref becomes an opaque JsonStringParse
// fallback recorded as RecursiveInflate. After this pass no $ref remains and
// $defs is stripped from the root — a post-pass assertion enforces this,
// grounded on schemaprofile.go's assertProfileKeywords fail-closed idiom,
// repurposed here as a postcondition check rather than a precondition one.
//
// Every $ref surviving into this pass is one Pass 0 already inlined once
// before its own cycle detection stopped it (resolveOneRef's OnStack branch),
// so each such target's count is credited to 1 before the walk starts —
// otherwise this pass would spend the full RecursionLimit again on top of
// Pass 0's inlining, cutting over to opaque one level deeper than
// RecursionLimit calls for.
//
// Skipped entirely for Gemini (spec §4.7).
func Pass5Recursion(ctx *Context, node Node) (Node, error) {
	if skipsRecursionBreaking(ctx.Opts.Target) {
		return node, nil
	}

	for _, target := range residualRefTargets(node) {
		ctx.Refs.Credit(target)
	}

	inlined, err := resolveRecursiveRefs(ctx, node, Root, 0)
	if err != nil {
		return nil, err
	}

	if hasResidualRef(inlined) {
		return nil, fail(schemaerr.SchemaError, Root, "internal error: residual $ref survived recursion breaking")
	}

	stripped := stripRootDefs(inlined)
	return stripped, nil
}

func resolveRecursiveRefs(ctx *Context, node Node, path string, depth int) (Node, error) {
	if err := ctx.Walker.Enter(path, depth); err != nil {
		return nil, err
	}

	if s, isSlice := asSlice(node); isSlice {
		out := make([]any, len(s))
		for i, v := range s {
			rewritten, err := resolveRecursiveRefs(ctx, v, JoinIndex(path, i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = rewritten
		}
		return out, nil
	}

	m, ok := asMap(node)
	if !ok {
		return node, nil
	}

	if refStr, isRef := m["$ref"].(string); isRef {
		target, resolvable := resolveJSONPointer(ctx.Root, refStr)
		if !resolvable {
			return nil, fail(schemaerr.UnresolvableRef, path, "$ref target does not exist: %s", refStr)
		}
		atLimit, restore := ctx.Refs.Enter(refStr)
		if atLimit {
			ctx.Codec.RecursiveInflate(path, refStr)
			return toOpaqueString(ctx, target, path), nil
		}
		defer restore()
		return resolveRecursiveRefs(ctx, cloneMap(target), path, depth+1)
	}

	out := make(map[string]any, len(m))
	for _, k := range SortedKeys(m) {
		v := m[k]
		childPath := Join(path, k)
		switch {
		case schemaChildMapKeys[k]:
			childMap, isMap := asMap(v)
			if !isMap {
				out[k] = v
				continue
			}
			nested := make(map[string]any, len(childMap))
			for _, name := range SortedKeys(childMap) {
				res, err := resolveRecursiveRefs(ctx, childMap[name], Join(childPath, name), depth+1)
				if err != nil {
					return nil, err
				}
				nested[name] = res
			}
			out[k] = nested
		case schemaChildListKeys[k]:
			childSlice, isSlice := asSlice(v)
			if !isSlice {
				out[k] = v
				continue
			}
			nested := make([]any, len(childSlice))
			for i, item := range childSlice {
				res, err := resolveRecursiveRefs(ctx, item, JoinIndex(childPath, i), depth+1)
				if err != nil {
					return nil, err
				}
				nested[i] = res
			}
			out[k] = nested
		case schemaChildKeys[k]:
			res, err := resolveRecursiveRefs(ctx, v, childPath, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = res
		default:
			out[k] = v
		}
	}
	return out, nil
}

// residualRefTargets collects, in deterministic order, every distinct $ref
// target still present in node (i.e. every target Pass 0 left behind as a
// genuine cycle rather than fully inlining).
func residualRefTargets(node Node) []string {
	seen := map[string]bool{}
	var order []string
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case map[string]any:
			if ref, ok := v["$ref"].(string); ok {
				if !seen[ref] {
					seen[ref] = true
					order = append(order, ref)
				}
				return
			}
			for _, k := range SortedKeys(v) {
				walk(v[k])
			}
		case []any:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(node)
	return order
}

func hasResidualRef(node Node) bool {
	m, ok := asMap(node)
	if !ok {
		if s, isSlice := asSlice(node); isSlice {
			for _, v := range s {
				if hasResidualRef(v) {
					return true
				}
			}
		}
		return false
	}
	if _, has := m["$ref"]; has {
		return true
	}
	for _, v := range m {
		if hasResidualRef(v) {
			return true
		}
	}
	return false
}

func stripRootDefs(node Node) Node {
	m, ok := asMap(node)
	if !ok {
		return node
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == "$defs" {
			continue
		}
		out[k] = v
	}
	return out
}
