package compiler

// Pass3Dictionary replaces an open-valued object schema (additionalProperties
// is a non-false schema, or patternProperties is non-empty) with an array of
// {key, value} pairs (spec §4.5). Skipped entirely for Gemini, which has
// native map support. Grounded on the generalized-object rewrite pattern in
// the retrieved pack's MCP and gateway jsonschema helpers, adapted to emit
// the exact array-of-pairs shape and a MapToArray codec record.
func Pass3Dictionary(ctx *Context, node Node) (Node, error) {
	if skipsDictionaryTranspilation(ctx.Opts.Target) {
		return node, nil
	}
	return Descend(ctx, node, Root, 0, func(m map[string]any, path string) (map[string]any, error) {
		valueSchema, isOpenMap := openValueSchema(m)
		if !isOpenMap {
			return m, nil
		}

		ctx.Codec.MapToArray(path, "key")

		entry := map[string]any{
			"type": "object",
			"properties": map[string]any{
				"key":   map[string]any{"type": "string"},
				"value": valueSchema,
			},
			"required":             []any{"key", "value"},
			"additionalProperties": false,
		}
		return map[string]any{
			"type":  "array",
			"items": entry,
		}, nil
	})
}

// openValueSchema detects an open-valued object node and returns the schema
// every value in the map must satisfy. patternProperties with more than one
// pattern has no single value schema to preserve losslessly, so the union
// (anyOf) of every pattern's schema becomes the value schema — the pattern
// itself (which constrained which keys each schema applied to) is lost, a
// trade-off inherent to the array-of-pairs representation rather than
// something a later pass can recover.
func openValueSchema(m map[string]any) (any, bool) {
	if ap, has := m["additionalProperties"]; has {
		if apMap, isSchema := asMap(ap); isSchema {
			return apMap, true
		}
		if open, isBool := ap.(bool); isBool && open {
			return true, true
		}
	}
	if pp, has := m["patternProperties"]; has {
		if ppMap, isMap := asMap(pp); isMap && len(ppMap) > 0 {
			if len(ppMap) == 1 {
				for _, v := range ppMap {
					return v, true
				}
			}
			variants := make([]any, 0, len(ppMap))
			for _, pattern := range SortedKeys(ppMap) {
				variants = append(variants, ppMap[pattern])
			}
			return map[string]any{"anyOf": variants}, true
		}
	}
	return nil, false
}
