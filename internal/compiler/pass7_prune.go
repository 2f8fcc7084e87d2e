package compiler

// Pass7Prune rewrites const to a single-value enum (spec §4.9: every target
// except Gemini lacks const), reorders any enum so a declared default sorts
// first, and drops every keyword the target's allow-list doesn't carry,
// recording each drop as a DroppedConstraint so a caller can still validate
// against it post-hoc. Grounded on schemaprofile.go's own pattern of walking
// a fixed keyword allow-list, inverted here from "reject the document" to
// "drop the keyword and keep going" since the pipeline never fails a
// convertible schema over an unsupported constraint.
func Pass7Prune(ctx *Context, node Node) (Node, error) {
	return Descend(ctx, node, Root, 0, pruneNode(ctx))
}

func pruneNode(ctx *Context) MapRewrite {
	dropped := droppedKeywordsFor(ctx.Opts.Target)
	allowConst := acceptsConst(ctx.Opts.Target)

	return func(m map[string]any, path string) (map[string]any, error) {
		out := cloneShallow(m)

		if constVal, hasConst := out["const"]; hasConst && !allowConst {
			delete(out, "const")
			out["enum"] = []any{constVal}
		}

		if enumVal, hasEnum := out["enum"]; hasEnum {
			out["enum"] = sortEnumDefaultFirst(enumVal, out["default"])
		}

		for _, key := range SortedKeys(out) {
			if _, isDropped := dropped[key]; !isDropped {
				continue
			}
			value := out[key]
			delete(out, key)
			ctx.Codec.DroppedConstraint(path, key, value)
		}

		return out, nil
	}
}

// sortEnumDefaultFirst moves the member structurally equal to defaultVal to
// the front of enum, preserving the relative order of the rest; no default
// (or no match) leaves the enum untouched.
func sortEnumDefaultFirst(enumVal, defaultVal any) any {
	list, ok := asSlice(enumVal)
	if !ok || defaultVal == nil {
		return enumVal
	}
	idx := -1
	for i, v := range list {
		if structuralEqual(v, defaultVal) {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return enumVal
	}
	out := make([]any, 0, len(list))
	out = append(out, list[idx])
	out = append(out, list[:idx]...)
	out = append(out, list[idx+1:]...)
	return out
}
