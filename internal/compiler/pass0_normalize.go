package compiler

import (
	"strings"

	"github.com/jsonschema-llm/llmschema/schemaerr"
)

// Pass0Normalize produces a fully-resolved, syntax-normalized schema from any
// supported draft (spec §4.2): draft-shape migration first, then recursive
// $ref resolution with per-branch cycle counting.
func Pass0Normalize(ctx *Context, root Node) (Node, error) {
	migrated := migrateDraftSyntax(root)
	ctx.Root = migrated
	return resolveRefs(ctx, migrated, Root, 0)
}

// migrateDraftSyntax recursively renames legacy draft shapes to their
// Draft-2020-12 equivalents: "definitions" -> "$defs" (also rewriting any
// "#/definitions/..." $ref strings found anywhere in the tree so pointers
// still resolve), "items": [A, B] -> "prefixItems": [A, B], and legacy
// "additionalItems": X -> "items": X.
func migrateDraftSyntax(node Node) Node {
	switch n := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[k] = v
		}
		if defs, ok := out["definitions"]; ok {
			if _, alreadyHasDefs := out["$defs"]; !alreadyHasDefs {
				out["$defs"] = defs
			}
			delete(out, "definitions")
		}
		if items, ok := out["items"]; ok {
			if arr, isArr := items.([]any); isArr {
				out["prefixItems"] = arr
				delete(out, "items")
			}
		}
		if additional, ok := out["additionalItems"]; ok {
			out["items"] = additional
			delete(out, "additionalItems")
		}
		if ref, ok := out["$ref"].(string); ok {
			out["$ref"] = strings.Replace(ref, "/definitions/", "/$defs/", 1)
		}
		for k, v := range out {
			out[k] = migrateDraftSyntax(v)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = migrateDraftSyntax(v)
		}
		return out
	default:
		return n
	}
}

// resolveRefs walks node, inlining every resolvable $ref subject to the
// per-branch cycle rule (spec §4.2 op. 3): a $ref whose target is an ancestor
// on the current descent branch is left intact the first time it is met, for
// Pass 5 to inline up to Opts.RecursionLimit and then convert to an opaque
// fallback; every other $ref is inlined.
func resolveRefs(ctx *Context, node Node, path string, depth int) (Node, error) {
	if err := ctx.Walker.Enter(path, depth); err != nil {
		return nil, err
	}

	m, ok := asMap(node)
	if !ok {
		if s, isSlice := asSlice(node); isSlice {
			out := make([]any, len(s))
			for i, v := range s {
				resolved, err := resolveRefs(ctx, v, JoinIndex(path, i), depth+1)
				if err != nil {
					return nil, err
				}
				out[i] = resolved
			}
			return out, nil
		}
		return node, nil
	}

	if refStr, isRef := m["$ref"].(string); isRef {
		return resolveOneRef(ctx, m, refStr, path, depth)
	}

	out := make(map[string]any, len(m))
	for _, k := range SortedKeys(m) {
		v := m[k]
		childPath := Join(path, k)
		switch k {
		case "properties", "patternProperties", "$defs":
			childMap, isMap := asMap(v)
			if !isMap {
				out[k] = v
				continue
			}
			rewritten := make(map[string]any, len(childMap))
			for _, name := range SortedKeys(childMap) {
				resolved, err := resolveRefs(ctx, childMap[name], Join(childPath, name), depth+1)
				if err != nil {
					return nil, err
				}
				rewritten[name] = resolved
			}
			out[k] = rewritten
		case "prefixItems", "allOf", "anyOf", "oneOf":
			childSlice, isSlice := asSlice(v)
			if !isSlice {
				out[k] = v
				continue
			}
			rewritten := make([]any, len(childSlice))
			for i, item := range childSlice {
				resolved, err := resolveRefs(ctx, item, JoinIndex(childPath, i), depth+1)
				if err != nil {
					return nil, err
				}
				rewritten[i] = resolved
			}
			out[k] = rewritten
		case "items", "additionalProperties", "contains", "not", "if", "then", "else":
			resolved, err := resolveRefs(ctx, v, childPath, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		default:
			out[k] = v
		}
	}
	return out, nil
}

func resolveOneRef(ctx *Context, refNode map[string]any, refStr, path string, depth int) (Node, error) {
	target, ok := resolveJSONPointer(ctx.Root, refStr)
	if !ok {
		return nil, fail(schemaerr.UnresolvableRef, path, "$ref target does not exist: %s", refStr)
	}

	if ctx.Refs.OnStack(refStr) {
		// A genuine cycle: refStr's target is an ancestor on this branch.
		// Pass 0 leaves it intact; Pass 5 owns the bounded, counter-driven
		// inlining of recursive refs (spec §4.7) so the recursion_limit
		// budget is spent exactly once, in one place.
		clone := make(map[string]any, len(refNode))
		for k, v := range refNode {
			clone[k] = v
		}
		return clone, nil
	}

	// Not currently on the branch stack: a plain forward reference (e.g. to
	// a $defs entry not presently being expanded). Track it on the stack so
	// a cycle back to it further down is detected, then fully inline — unless
	// this target's budget is already exhausted (RecursionLimit 0, or a prior
	// inlining elsewhere on this branch already spent it), in which case it's
	// left for Pass 5 to turn into an opaque fallback like any other
	// still-on-stack cycle.
	atLimit, restore := ctx.Refs.Enter(refStr)
	if atLimit {
		clone := make(map[string]any, len(refNode))
		for k, v := range refNode {
			clone[k] = v
		}
		return clone, nil
	}
	defer restore()
	return resolveRefs(ctx, cloneMap(target), path, depth+1)
}
