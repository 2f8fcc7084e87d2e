package compiler

import (
	"sort"

	"github.com/jsonschema-llm/llmschema/canonicaljson"
)

// SortStringsInPlace sorts s by Unicode codepoint in place; exported so
// higher layers (tests, other passes) share the one sort call site.
func SortStringsInPlace(s []string) {
	sort.Strings(s)
}

// canonicalKey produces a comparison key for structural JSON equality,
// grounded on schemaprofile/compat.go's canonicalKey/equalJSONValue in the
// teacher: two values are structurally equal iff their canonical JSON bytes
// are identical, independent of object key order.
func canonicalKey(v any) string {
	b, err := canonicaljson.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func structuralEqual(a, b any) bool {
	return canonicalKey(a) == canonicalKey(b)
}

// intersectEnums intersects two enum value lists by structural equality,
// preserving a's ordering (so earlier generation-order preferences survive
// a merge deterministically).
func intersectEnums(a, b any) ([]any, error) {
	aList, _ := asSlice(a)
	bList, _ := asSlice(b)
	bKeys := map[string]struct{}{}
	for _, v := range bList {
		bKeys[canonicalKey(v)] = struct{}{}
	}
	var out []any
	for _, v := range aList {
		if _, ok := bKeys[canonicalKey(v)]; ok {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, errEmptyIntersection
	}
	return out, nil
}

var errEmptyIntersection = emptyIntersectionError{}

type emptyIntersectionError struct{}

func (emptyIntersectionError) Error() string { return "empty enum intersection" }
