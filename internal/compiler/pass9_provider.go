package compiler

// providerDepthLimit is the advisory nesting depth beyond which a provider is
// known to start rejecting or degrading schemas in practice (spec §4.11).
// Gemini and Claude are materially more permissive than OpenAI here; absent a
// documented number for them this compiler only truncates for OpenAI, and
// leaves Gemini and Claude schemas at any depth without a depth diagnostic.
var providerDepthLimit = map[Target]int{
	TargetOpenAIStrict: 5,
}

// Pass9Provider is the final pass: it wraps a non-object root in a single
// synthetic property (every target's structured-output API requires an
// object at the top level), audits nesting depth against the target's known
// practical limit, truncating anything past it to an opaque string, and
// flags heterogeneous enums (mixed JSON types in one enum list) as an
// advisory Diagnostic rather than rewriting them — every target's enum
// keyword tolerates mixed-type members, so there is nothing to fix, only
// something worth surfacing to a caller reviewing output quality.
func Pass9Provider(ctx *Context, node Node) (Node, error) {
	wrapped := wrapNonObjectRoot(ctx, node)

	audited, err := auditDepth(ctx, wrapped, Root, 0)
	if err != nil {
		return nil, err
	}

	flagHeterogeneousEnums(ctx, audited, Root)

	return audited, nil
}

func wrapNonObjectRoot(ctx *Context, node Node) Node {
	m, isMap := asMap(node)
	if isMap {
		types := normalizeType(m)
		if len(types) == 0 || containsString(types, "object") {
			return node
		}
	}

	ctx.Codec.RootObjectWrapper("result")
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"result": node,
		},
		"required":             []any{"result"},
		"additionalProperties": false,
	}
}

func auditDepth(ctx *Context, node Node, path string, depth int) (Node, error) {
	limit, hasLimit := providerDepthLimit[ctx.Opts.Target]
	if hasLimit && depth > limit {
		ctx.diagnostic(path, "depth_truncated", "schema nesting exceeds the target's practical depth limit; truncated to an opaque string")
		return toOpaqueString(ctx, node, path), nil
	}

	m, ok := asMap(node)
	if !ok {
		return node, nil
	}

	out := make(map[string]any, len(m))
	for _, k := range SortedKeys(m) {
		v := m[k]
		childPath := Join(path, k)
		// only properties/items/prefixItems edges add a nesting level;
		// composition wrappers (anyOf, ...) do not.
		next := depth
		if k == "properties" || k == "items" || k == "prefixItems" {
			next = depth + 1
		}
		switch {
		case schemaChildMapKeys[k]:
			childMap, isChildMap := asMap(v)
			if !isChildMap {
				out[k] = v
				continue
			}
			nested := make(map[string]any, len(childMap))
			for _, name := range SortedKeys(childMap) {
				res, err := auditDepth(ctx, childMap[name], Join(childPath, name), next)
				if err != nil {
					return nil, err
				}
				nested[name] = res
			}
			out[k] = nested
		case schemaChildListKeys[k]:
			childSlice, isChildSlice := asSlice(v)
			if !isChildSlice {
				out[k] = v
				continue
			}
			nested := make([]any, len(childSlice))
			for i, item := range childSlice {
				res, err := auditDepth(ctx, item, JoinIndex(childPath, i), next)
				if err != nil {
					return nil, err
				}
				nested[i] = res
			}
			out[k] = nested
		case schemaChildKeys[k]:
			res, err := auditDepth(ctx, v, childPath, next)
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

func flagHeterogeneousEnums(ctx *Context, node Node, path string) {
	m, ok := asMap(node)
	if !ok {
		return
	}
	if list, hasEnum := asSlice(m["enum"]); hasEnum && len(list) > 1 {
		kinds := map[string]struct{}{}
		for _, v := range list {
			kinds[jsonKind(v)] = struct{}{}
		}
		if len(kinds) > 1 {
			ctx.diagnostic(Join(path, "enum"), "heterogeneous_enum", "enum mixes more than one JSON type; the provider will accept it but downstream consumers may not expect the mix")
		}
	}
	for _, k := range SortedKeys(m) {
		v := m[k]
		childPath := Join(path, k)
		switch {
		case schemaChildMapKeys[k]:
			if childMap, isChildMap := asMap(v); isChildMap {
				for _, name := range SortedKeys(childMap) {
					flagHeterogeneousEnums(ctx, childMap[name], Join(childPath, name))
				}
			}
		case schemaChildListKeys[k]:
			if childSlice, isChildSlice := asSlice(v); isChildSlice {
				for i, item := range childSlice {
					flagHeterogeneousEnums(ctx, item, JoinIndex(childPath, i))
				}
			}
		case schemaChildKeys[k]:
			flagHeterogeneousEnums(ctx, v, childPath)
		}
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "number"
	}
}
