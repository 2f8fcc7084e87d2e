package compiler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jsonschema-llm/llmschema/schemaerr"
)

// Walker is the single source of truth for JSON-Pointer path construction.
// Every codec entry's path and every location a pass descends into is
// produced through it, so the rehydrator's independent paired walk finds the
// same nodes (spec §4.1).
type Walker struct {
	maxDepth int
}

// NewWalker returns a Walker enforcing maxDepth (0 means "no non-trivial
// descent is permitted" — see RecursionDepthExceeded below).
func NewWalker(maxDepth int) *Walker {
	return &Walker{maxDepth: maxDepth}
}

// Root is the path cursor for the document root.
const Root = "#"

// Join appends a raw (unescaped) token to a JSON Pointer path.
func Join(path, token string) string {
	return path + "/" + escapeToken(token)
}

// JoinIndex appends an array index to a JSON Pointer path.
func JoinIndex(path string, i int) string {
	return path + "/" + strconv.Itoa(i)
}

func escapeToken(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// Enter checks a descent from depth to depth+1 at path against max_depth,
// returning a RecursionDepthExceeded error if the guard trips.
func (w *Walker) Enter(path string, depth int) error {
	if depth > w.maxDepth {
		return fail(schemaerr.RecursionDepthExceeded, path, "walker exceeded max_depth (%d)", w.maxDepth)
	}
	return nil
}

// SortedKeys returns the keys of an object-typed map sorted by Unicode
// codepoint, the iteration order the determinism requirement (spec §5)
// mandates everywhere a pass walks a node's properties.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// schemaChildKeys are the object keys under which a single child schema (not
// a list or map of them) lives.
var schemaChildKeys = map[string]bool{
	"items": true, "additionalProperties": true, "contains": true,
	"not": true, "if": true, "then": true, "else": true, "propertyNames": true,
}

// schemaChildListKeys are the object keys holding an ordered list of child schemas.
var schemaChildListKeys = map[string]bool{
	"prefixItems": true, "anyOf": true, "allOf": true, "oneOf": true,
}

// schemaChildMapKeys are the object keys holding a name/pattern -> schema map.
var schemaChildMapKeys = map[string]bool{
	"properties": true, "patternProperties": true, "$defs": true,
}

// MapRewrite transforms a single object schema node (pre-order, before
// descending into its children). Most passes only care about object nodes
// and implement just this, via Descend.
type MapRewrite func(m map[string]any, path string) (map[string]any, error)

// Rewrite transforms ANY node — object, boolean shorthand, or otherwise —
// pre-order. Passes that need to act on boolean schema shorthand (e.g. Pass 4
// turning a bare `true` into an opaque string) implement this directly via
// DescendNode; Descend is the common-case object-only wrapper around it.
type Rewrite func(node Node, path string) (Node, error)

// Descend is the common case: rewrite only inspects/changes object schema
// nodes; booleans and other leaves pass through untouched.
func Descend(ctx *Context, node Node, path string, depth int, rewrite MapRewrite) (Node, error) {
	return DescendNode(ctx, node, path, depth, func(n Node, p string) (Node, error) {
		m, ok := asMap(n)
		if !ok {
			return n, nil
		}
		return rewrite(m, p)
	})
}

// DescendNode applies rewrite to node — of any shape — then, if the result is
// an object, recurses into every child schema location using the standard
// set of schema-bearing keywords, reconstructing the tree bottom-up. This is
// the shared structural-recursion engine every pass from Pass 3 onward uses,
// so each pass file only needs to describe what changes at a single node.
func DescendNode(ctx *Context, node Node, path string, depth int, rewrite Rewrite) (Node, error) {
	if err := ctx.Walker.Enter(path, depth); err != nil {
		return nil, err
	}

	if s, isSlice := asSlice(node); isSlice {
		out := make([]any, len(s))
		for i, v := range s {
			rewritten, err := DescendNode(ctx, v, JoinIndex(path, i), depth+1, rewrite)
			if err != nil {
				return nil, err
			}
			out[i] = rewritten
		}
		return out, nil
	}

	rewrittenNode, err := rewrite(node, path)
	if err != nil {
		return nil, err
	}

	rewritten, ok := asMap(rewrittenNode)
	if !ok {
		return rewrittenNode, nil
	}

	out := make(map[string]any, len(rewritten))
	for _, k := range SortedKeys(rewritten) {
		v := rewritten[k]
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
				res, err := DescendNode(ctx, childMap[name], Join(childPath, name), depth+1, rewrite)
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
				res, err := DescendNode(ctx, item, JoinIndex(childPath, i), depth+1, rewrite)
				if err != nil {
					return nil, err
				}
				nested[i] = res
			}
			out[k] = nested
		case schemaChildKeys[k]:
			res, err := DescendNode(ctx, v, childPath, depth+1, rewrite)
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
