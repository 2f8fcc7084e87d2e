package llmschema

import (
	"sort"
	"strconv"
)

// LintProblem is one structural defect Lint found: an out-of-vocabulary
// keyword or a malformed required/type value. Distinct from a JSON Schema
// validation error — Lint never inspects
// a data instance, only the schema's own shape (Non-goal: this library is
// not a JSON Schema validator).
type LintProblem struct {
	Path    string
	Kind    string
	Message string
}

// knownKeywords is every keyword the compiler understands (spec.md §3);
// anything else Lint flags as out-of-vocabulary rather than silently
// ignoring, so a caller sees the full set of problems before calling
// Convert, matching validate.go's accumulate-everything idiom rather than
// Convert's own fail-fast one.
var knownKeywords = map[string]struct{}{
	"$ref": {}, "$defs": {}, "definitions": {},
	"type": {}, "enum": {}, "const": {}, "description": {}, "title": {}, "default": {},
	"properties": {}, "patternProperties": {}, "additionalProperties": {}, "required": {},
	"propertyNames": {}, "minProperties": {}, "maxProperties": {},
	"items": {}, "prefixItems": {}, "additionalItems": {}, "contains": {},
	"minItems": {}, "maxItems": {}, "uniqueItems": {}, "minContains": {}, "maxContains": {},
	"allOf": {}, "anyOf": {}, "oneOf": {}, "not": {}, "if": {}, "then": {}, "else": {},
	"minimum": {}, "maximum": {}, "exclusiveMinimum": {}, "exclusiveMaximum": {}, "multipleOf": {},
	"minLength": {}, "maxLength": {}, "pattern": {}, "format": {},
	"dependentRequired": {}, "dependentSchemas": {},
	"unevaluatedProperties": {}, "unevaluatedItems": {},
	"discriminator": {},
	"$schema": {}, "$id": {}, "$comment": {},
}

// Lint reports every structural problem Lint can find in schema in one
// pass, rather than stopping at the first (unlike Convert).
func Lint(schema JSONSchema) []LintProblem {
	var problems []LintProblem
	lintNode(schema, "#", &problems)
	sort.SliceStable(problems, func(i, j int) bool { return problems[i].Path < problems[j].Path })
	return problems
}

func lintNode(node any, path string, problems *[]LintProblem) {
	switch n := node.(type) {
	case bool:
		return
	case map[string]any:
		lintObject(n, path, problems)
	default:
		*problems = append(*problems, LintProblem{Path: path, Kind: "invalid_node", Message: "schema node is neither an object nor a boolean"})
	}
}

func lintObject(m map[string]any, path string, problems *[]LintProblem) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := m[k]
		if _, known := knownKeywords[k]; !known {
			*problems = append(*problems, LintProblem{
				Path: joinPath(path, k), Kind: "unknown_keyword",
				Message: "keyword is outside this compiler's supported vocabulary",
			})
		}

		switch k {
		case "required":
			if !isStringArray(v) {
				*problems = append(*problems, LintProblem{Path: joinPath(path, k), Kind: "malformed_required", Message: "required must be an array of strings"})
			}
		case "type":
			if !isValidType(v) {
				*problems = append(*problems, LintProblem{Path: joinPath(path, k), Kind: "malformed_type", Message: "type must be a string or array of strings naming a JSON Schema primitive type"})
			}
		case "properties", "patternProperties", "$defs", "definitions":
			if props, ok := v.(map[string]any); ok {
				for _, name := range sortedMapKeys(props) {
					lintNode(props[name], joinPath(joinPath(path, k), name), problems)
				}
			} else {
				*problems = append(*problems, LintProblem{Path: joinPath(path, k), Kind: "malformed_keyword", Message: k + " must be an object mapping names to schemas"})
			}
		case "allOf", "anyOf", "oneOf", "prefixItems":
			if list, ok := v.([]any); ok {
				for i, item := range list {
					lintNode(item, joinPathIndex(joinPath(path, k), i), problems)
				}
			} else {
				*problems = append(*problems, LintProblem{Path: joinPath(path, k), Kind: "malformed_keyword", Message: k + " must be an array of schemas"})
			}
		case "items", "additionalProperties", "contains", "not", "if", "then", "else", "propertyNames":
			lintNode(v, joinPath(path, k), problems)
		}
	}
}

func joinPath(path, token string) string { return path + "/" + token }
func joinPathIndex(path string, i int) string {
	return path + "/" + strconv.Itoa(i)
}

func sortedMapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isStringArray(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

var validPrimitiveTypes = map[string]struct{}{
	"object": {}, "array": {}, "string": {}, "number": {}, "integer": {}, "boolean": {}, "null": {},
}

func isValidType(v any) bool {
	switch t := v.(type) {
	case string:
		_, ok := validPrimitiveTypes[t]
		return ok
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return false
			}
			if _, valid := validPrimitiveTypes[s]; !valid {
				return false
			}
		}
		return true
	default:
		return false
	}
}
