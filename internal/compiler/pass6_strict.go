package compiler

// Pass6Strict closes every object schema for OpenAI Strict / Claude
// recommended mode (spec §4.8): additionalProperties is forced to false and
// every property is moved into required. A property that was not originally
// required is rewritten to {anyOf: [original, {type: "null"}]} so the model
// may still emit null for it, and a NullableOptional codec record is
// appended so Rehydrate can drop an explicit null back to "absent".
//
// Skipped entirely for Gemini, and for every target when Opts.Mode is
// permissive (spec §4.8) — appliesStrictEnforcement decides this once per
// Convert call.
func Pass6Strict(ctx *Context, node Node) (Node, error) {
	if !appliesStrictEnforcement(ctx.Opts.Target, ctx.Opts.Mode) {
		return node, nil
	}
	return Descend(ctx, node, Root, 0, closeObject(ctx))
}

func closeObject(ctx *Context) MapRewrite {
	return func(m map[string]any, path string) (map[string]any, error) {
		props, hasProps := asMap(m["properties"])
		if !hasProps {
			return m, nil
		}

		originallyRequired := stringSet(m["required"])

		newProps := make(map[string]any, len(props))
		newRequired := make([]any, 0, len(props))
		for _, name := range SortedKeys(props) {
			schema := props[name]
			if _, wasRequired := originallyRequired[name]; !wasRequired {
				ctx.Codec.NullableOptional(Join(Join(path, "properties"), name))
				schema = map[string]any{
					"anyOf": []any{schema, map[string]any{"type": "null"}},
				}
			}
			newProps[name] = schema
			newRequired = append(newRequired, name)
		}

		out := cloneShallow(m)
		out["properties"] = newProps
		out["required"] = newRequired
		out["additionalProperties"] = false
		return out, nil
	}
}

func cloneShallow(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
