package compiler

import "github.com/jsonschema-llm/llmschema/schemaerr"

// Pass1AllOf eliminates the "inheritance by intersection" pattern (spec
// §4.3), recursively merging every allOf branch list into a single flat
// schema. Grounded on schemaprofile/allof.go's mergeAllOfBranch in the
// teacher, generalized from the profile's fixed keyword set to the full
// vocabulary in §3 and extended to emit DroppedConstraint codec records for
// conditional keywords instead of failing closed.
func Pass1AllOf(ctx *Context, node Node) (Node, error) {
	return Descend(ctx, node, Root, 0, func(m map[string]any, path string) (map[string]any, error) {
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		branches, hasAllOf := out["allOf"]
		if !hasAllOf {
			return out, nil
		}
		branchList, isSlice := asSlice(branches)
		if !isSlice {
			return out, nil
		}
		delete(out, "allOf")
		merged := out
		for i, branch := range branchList {
			branchMap, isMap := asMap(branch)
			if !isMap {
				continue
			}
			var err error
			merged, err = mergeAllOfBranch(ctx, merged, branchMap, JoinIndex(Join(path, "allOf"), i))
			if err != nil {
				return nil, err
			}
		}
		return merged, nil
	})
}

// mergeAllOfBranch merges branch into base left-to-right per spec §4.3.
func mergeAllOfBranch(ctx *Context, base, branch map[string]any, path string) (map[string]any, error) {
	out := make(map[string]any, len(base)+len(branch))
	for k, v := range base {
		out[k] = v
	}

	// type: intersection.
	if baseTypes, hasBase := out["type"]; hasBase {
		if branchTypes, hasBranch := branch["type"]; hasBranch {
			merged := intersectTypes(normalizeType(map[string]any{"type": baseTypes}), normalizeType(map[string]any{"type": branchTypes}))
			if len(merged) == 0 {
				return nil, fail(schemaerr.SchemaError, path, "allOf branch type intersection is empty")
			}
			out["type"] = typesToAny(merged)
		}
	} else if branchTypes, hasBranch := branch["type"]; hasBranch {
		out["type"] = branchTypes
	}

	// properties: union, recursive merge on collision.
	baseProps, _ := asMap(out["properties"])
	branchProps, hasBranchProps := asMap(branch["properties"])
	if hasBranchProps {
		merged := make(map[string]any, len(baseProps)+len(branchProps))
		for k, v := range baseProps {
			merged[k] = v
		}
		for _, name := range SortedKeys(branchProps) {
			v := branchProps[name]
			if existing, collide := merged[name]; collide {
				existingMap, eok := asMap(existing)
				branchMap, bok := asMap(v)
				if eok && bok {
					mergedChild, err := mergeAllOfBranch(ctx, existingMap, branchMap, Join(Join(path, "properties"), name))
					if err != nil {
						return nil, err
					}
					merged[name] = mergedChild
					continue
				}
			}
			merged[name] = v
		}
		out["properties"] = merged
	}

	// required: union.
	baseReq := stringSet(out["required"])
	branchReq := stringSet(branch["required"])
	if len(baseReq) > 0 || len(branchReq) > 0 {
		names := map[string]struct{}{}
		for k := range baseReq {
			names[k] = struct{}{}
		}
		for k := range branchReq {
			names[k] = struct{}{}
		}
		merged := make([]any, 0, len(names))
		for _, k := range sortedSetKeys(names) {
			merged = append(merged, k)
		}
		out["required"] = merged
	}

	// enum/const: intersection over structural equality.
	if baseEnum, hasBaseEnum := out["enum"]; hasBaseEnum {
		if branchEnum, hasBranchEnum := branch["enum"]; hasBranchEnum {
			merged, err := intersectEnums(baseEnum, branchEnum)
			if err != nil {
				return nil, fail(schemaerr.SchemaError, path, "allOf branch enum intersection is empty")
			}
			out["enum"] = merged
		}
	} else if branchEnum, hasBranchEnum := branch["enum"]; hasBranchEnum {
		out["enum"] = branchEnum
	}
	if baseConst, hasBaseConst := out["const"]; hasBaseConst {
		if branchConst, hasBranchConst := branch["const"]; hasBranchConst {
			if !structuralEqual(baseConst, branchConst) {
				return nil, fail(schemaerr.SchemaError, path, "allOf branch const values conflict")
			}
		}
	} else if branchConst, hasBranchConst := branch["const"]; hasBranchConst {
		out["const"] = branchConst
	}

	// additionalProperties: false wins over schema wins over true.
	if mergedAP, ok := mergeAdditionalProperties(out["additionalProperties"], branch["additionalProperties"]); ok {
		out["additionalProperties"] = mergedAP
	}

	// items: recursive merge when both sides have an object-shaped items.
	if baseItems, hasBaseItems := asMap(out["items"]); hasBaseItems {
		if branchItems, hasBranchItems := asMap(branch["items"]); hasBranchItems {
			mergedItems, err := mergeAllOfBranch(ctx, baseItems, branchItems, Join(path, "items"))
			if err != nil {
				return nil, err
			}
			out["items"] = mergedItems
		}
	} else if branchItems, hasBranchItems := branch["items"]; hasBranchItems {
		out["items"] = branchItems
	}

	// numeric/string bounds: most restrictive wins.
	mergeBound(out, branch, "minimum", true)
	mergeBound(out, branch, "maximum", false)
	mergeBound(out, branch, "minLength", true)
	mergeBound(out, branch, "maxLength", false)
	mergeBound(out, branch, "minItems", true)
	mergeBound(out, branch, "maxItems", false)

	// conditional keywords: no generative equivalent, drop with a codec record.
	for _, k := range []string{"if", "then", "else", "not", "dependentRequired", "dependentSchemas"} {
		if v, has := branch[k]; has {
			ctx.Codec.DroppedConstraint(path, k, v)
		}
	}

	// every other branch keyword ($ref, prefixItems, pattern, ...) is taken
	// over as a plain sibling when the merged schema does not already have it.
	for k, v := range branch {
		switch k {
		case "allOf", "if", "then", "else", "not", "dependentRequired", "dependentSchemas":
			continue
		}
		if _, has := out[k]; !has {
			out[k] = v
		}
	}

	return out, nil
}

func mergeAdditionalProperties(base, branch any) (any, bool) {
	if base == nil && branch == nil {
		return nil, false
	}
	if baseBool, ok := base.(bool); ok && !baseBool {
		return false, true
	}
	if branchBool, ok := branch.(bool); ok && !branchBool {
		return false, true
	}
	if _, ok := asMap(base); ok {
		return base, true
	}
	if _, ok := asMap(branch); ok {
		return branch, true
	}
	if branch != nil {
		return branch, true
	}
	return base, true
}

func mergeBound(out, branch map[string]any, key string, wantMax bool) {
	branchVal, hasBranch := toFloat64(branch[key])
	if !hasBranch {
		return
	}
	baseVal, hasBase := toFloat64(out[key])
	if !hasBase {
		out[key] = branch[key]
		return
	}
	if wantMax {
		if branchVal > baseVal {
			out[key] = branch[key]
		}
	} else {
		if branchVal < baseVal {
			out[key] = branch[key]
		}
	}
}

func intersectTypes(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	bset := map[string]struct{}{}
	for _, t := range b {
		bset[t] = struct{}{}
	}
	var out []string
	for _, t := range a {
		if _, ok := bset[t]; ok {
			out = append(out, t)
			continue
		}
		// integer is a subtype of number: if one side says "integer" and the
		// other allows "number", the intersection is the narrower "integer".
		if t == "integer" {
			if _, ok := bset["number"]; ok {
				out = append(out, t)
			}
		}
	}
	for _, t := range b {
		if t == "number" {
			if containsString(a, "integer") && !containsString(out, "integer") {
				out = append(out, "integer")
			}
		}
	}
	return out
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func typesToAny(types []string) any {
	if len(types) == 1 {
		return types[0]
	}
	out := make([]any, len(types))
	for i, t := range types {
		out[i] = t
	}
	return out
}

func sortedSetKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	SortStringsInPlace(keys)
	return keys
}
