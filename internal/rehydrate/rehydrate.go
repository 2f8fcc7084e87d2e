// Package rehydrate implements the inverse of the compiler package: given
// model output shaped to a converted schema, the codec that recorded how it
// got that shape, and the ORIGINAL schema, it walks data and original schema
// together and undoes each transform, producing the data shape an author of
// the original schema would recognize.
package rehydrate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/jsonschema-llm/llmschema/codec"
	"github.com/jsonschema-llm/llmschema/internal/compiler"
	"github.com/jsonschema-llm/llmschema/schemaerr"
)

// Result is Rehydrate's return value: the inflated data plus any advisory
// warnings collected along the way (an opaque string that failed to parse as
// JSON, a dropped constraint the caller may want to check by hand).
type Result struct {
	Data     any
	Warnings []Warning
}

// Warning is a recoverable anomaly found during rehydration; reconstruction
// continues past one, unlike the errors schemaerr defines (spec.md §7).
// Kind is one of "constraint_violation", "coercion_applied",
// "duplicate_map_key", "parse_failure" (spec.md §4.12).
type Warning struct {
	DataPath   string
	SchemaPath string
	Kind       string
	Message    string
}

// Rehydrate inverts Convert. originalSchema is the schema as it was BEFORE
// conversion (the same value Convert was called with); c is the Codec
// Convert returned alongside the converted schema.
func Rehydrate(data any, originalSchema any, c codec.Codec) (Result, error) {
	if got := codec.MajorVersion(c.SchemaURI); got != codec.MajorVersion(codec.SchemaURI) {
		return Result{}, schemaerr.New(schemaerr.CodecVersionMismatch, compiler.Root,
			"codec major version %d is incompatible with this build's %d", got, codec.MajorVersion(codec.SchemaURI))
	}

	w := &walker{codec: c}

	root := data
	if rec := findRootWrapper(c); rec != nil {
		m, ok := asMap(root)
		if !ok {
			return Result{}, schemaerr.New(schemaerr.RehydrationError, compiler.Root, "expected wrapped object root, got %T", root)
		}
		root = m[rec.WrapperField]
	}

	inflated, err := w.walk(root, originalSchema, compiler.Root)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: inflated, Warnings: w.warnings}, nil
}

func findRootWrapper(c codec.Codec) *codec.TransformRecord {
	for i := range c.Transforms {
		if c.Transforms[i].Type == codec.TagRootObjectWrapper {
			return &c.Transforms[i]
		}
	}
	return nil
}

type walker struct {
	codec    codec.Codec
	warnings []Warning
}

func (w *walker) wasNullableOptional(path string) bool {
	for _, rec := range w.codec.TransformsAt(path) {
		if rec.Type == codec.TagNullableOptional {
			return true
		}
	}
	return false
}

func (w *walker) warn(dataPath, schemaPath, kind, message string) {
	w.warnings = append(w.warnings, Warning{DataPath: dataPath, SchemaPath: schemaPath, Kind: kind, Message: message})
}

// walk descends data alongside the ORIGINAL schema node, computing the path
// a transform would have been recorded at in the CONVERTED schema (the same
// Join/JoinIndex scheme Convert's passes use), applying every transform and
// dropped-constraint record found at that path before recursing into
// children.
func (w *walker) walk(data any, origSchema any, path string) (any, error) {
	data, err := w.applyTransforms(data, path)
	if err != nil {
		return nil, err
	}

	schema, ok := asMap(origSchema)
	if !ok {
		return data, nil
	}

	data = w.applyDroppedConstraints(data, schema, path)

	if obj, isObj := asMap(data); isObj {
		if props, hasProps := asMap(schema["properties"]); hasProps {
			out := make(map[string]any, len(obj))
			for k, v := range obj {
				childSchema, hasChild := props[k]
				if !hasChild {
					out[k] = v
					continue
				}
				childPath := compiler.Join(compiler.Join(path, "properties"), k)
				if v == nil && w.wasNullableOptional(childPath) {
					continue
				}
				res, err := w.walk(v, childSchema, childPath)
				if err != nil {
					return nil, err
				}
				out[k] = res
			}
			return out, nil
		}
	}

	if arr, isArr := asSlice(data); isArr {
		if prefix, hasPrefix := asSlice(schema["prefixItems"]); hasPrefix {
			out := make([]any, len(arr))
			for i, v := range arr {
				if i < len(prefix) {
					res, err := w.walk(v, prefix[i], compiler.JoinIndex(compiler.Join(path, "prefixItems"), i))
					if err != nil {
						return nil, err
					}
					out[i] = res
					continue
				}
				out[i] = v
			}
			return out, nil
		}
		if itemSchema, hasItems := schema["items"]; hasItems {
			out := make([]any, len(arr))
			for i, v := range arr {
				res, err := w.walk(v, itemSchema, compiler.Join(path, "items"))
				if err != nil {
					return nil, err
				}
				out[i] = res
			}
			return out, nil
		}
	}

	// Pass 2 appended the oneOf branches after any existing anyOf branches
	// under "anyOf", so a oneOf branch's converted index is offset.
	offset := 0
	for _, kw := range []string{"anyOf", "oneOf"} {
		branches, hasBranches := asSlice(schema[kw])
		if !hasBranches {
			continue
		}
		for i, branch := range branches {
			branchMap, ok := asMap(branch)
			if !ok {
				continue
			}
			if structurallyFits(data, branchMap) {
				return w.walk(data, branchMap, compiler.JoinIndex(compiler.Join(path, "anyOf"), offset+i))
			}
		}
		offset += len(branches)
	}

	return data, nil
}

// applyTransforms inverts every codec record at path, in reverse
// accumulation order (later passes' transforms compose outward, so undoing
// them outermost-first mirrors how they were applied).
func (w *walker) applyTransforms(data any, path string) (any, error) {
	records := w.codec.TransformsAt(path)
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		switch rec.Type {
		case codec.TagMapToArray:
			inverted, err := w.invertMapToArray(data, rec, path)
			if err != nil {
				return nil, err
			}
			data = inverted
		case codec.TagJSONStringParse, codec.TagRecursiveInflate:
			inverted, warned := invertOpaqueString(data)
			if warned != "" {
				w.warn(path, path, "parse_failure", warned)
			}
			data = inverted
		case codec.TagNullableOptional:
			// Handled one level up, by the object walk step: an explicit
			// null is dropped from the parent map entirely rather than
			// inverted at this node.
		case codec.TagRootObjectWrapper:
			// Handled once, up front, in Rehydrate itself.
		}
	}
	return data, nil
}

// applyDroppedConstraints attempts type coercion and post-hoc violation
// checking for every DroppedConstraint recorded at path (spec.md §4.12's
// last table row): a value narrower-typed by the original schema than what
// the model actually emitted is coerced back (e.g. the string "3.14" to the
// float64 3.14 where the schema demanded a number), and the resulting value
// is checked against the constraint Pass 7 pruned before sending the schema
// to the provider.
func (w *walker) applyDroppedConstraints(data any, schema map[string]any, path string) any {
	for _, dc := range w.codec.DroppedConstraints {
		if dc.Path != path {
			continue
		}
		schemaPath := compiler.Join(path, dc.Constraint)

		if coerced, coercedOK := coerceToDeclaredType(data, schema); coercedOK {
			w.warn(path, schemaPath, "coercion_applied",
				fmt.Sprintf("coerced %v to the type the original schema declared", data))
			data = coerced
		}

		if msg, violated := violatesConstraint(data, dc.Constraint, dc.Value); violated {
			w.warn(path, schemaPath, "constraint_violation", msg)
		}
	}
	return data
}

// coerceToDeclaredType converts data to the type schema's "type" keyword
// declares when data arrived as a JSON string but the original schema
// demanded a number or integer — the one coercion spec.md §4.12 names.
func coerceToDeclaredType(data any, schema map[string]any) (any, bool) {
	s, isString := data.(string)
	if !isString {
		return data, false
	}
	types := declaredTypes(schema)
	if !containsAny(types, "number", "integer") {
		return data, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return data, false
	}
	return f, true
}

func declaredTypes(schema map[string]any) []string {
	switch t := schema["type"].(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if str, ok := v.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

func containsAny(haystack []string, needles ...string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}

// violatesConstraint reports whether data fails the named constraint Pass 7
// pruned from the schema sent to the provider. Only the keywords Pass 7
// actually drops are checked; an unrecognized constraint name or a type
// mismatch that makes the check meaningless is treated as "not violated" —
// this is post-hoc best-effort validation, not a full JSON Schema validator.
func violatesConstraint(data any, constraint string, value any) (string, bool) {
	switch constraint {
	case "minLength":
		s, ok := data.(string)
		min, okMin := toFloat(value)
		if ok && okMin && float64(len([]rune(s))) < min {
			return fmt.Sprintf("value %q is shorter than the dropped minLength %v", s, value), true
		}
	case "maxLength":
		s, ok := data.(string)
		max, okMax := toFloat(value)
		if ok && okMax && float64(len([]rune(s))) > max {
			return fmt.Sprintf("value %q is longer than the dropped maxLength %v", s, value), true
		}
	case "pattern":
		s, ok := data.(string)
		pattern, okPattern := value.(string)
		if ok && okPattern {
			if re, err := regexp.Compile(pattern); err == nil && !re.MatchString(s) {
				return fmt.Sprintf("value %q does not match the dropped pattern %q", s, pattern), true
			}
		}
	case "minimum":
		n, ok := toFloat(data)
		min, okMin := toFloat(value)
		if ok && okMin && n < min {
			return fmt.Sprintf("value %v is below the dropped minimum %v", n, value), true
		}
	case "maximum":
		n, ok := toFloat(data)
		max, okMax := toFloat(value)
		if ok && okMax && n > max {
			return fmt.Sprintf("value %v is above the dropped maximum %v", n, value), true
		}
	case "exclusiveMinimum":
		n, ok := toFloat(data)
		min, okMin := toFloat(value)
		if ok && okMin && n <= min {
			return fmt.Sprintf("value %v does not exceed the dropped exclusiveMinimum %v", n, value), true
		}
	case "exclusiveMaximum":
		n, ok := toFloat(data)
		max, okMax := toFloat(value)
		if ok && okMax && n >= max {
			return fmt.Sprintf("value %v does not fall below the dropped exclusiveMaximum %v", n, value), true
		}
	case "multipleOf":
		n, ok := toFloat(data)
		step, okStep := toFloat(value)
		if ok && okStep && step != 0 {
			q := n / step
			if math.Abs(q-math.Round(q)) > 1e-9 {
				return fmt.Sprintf("value %v is not a multiple of the dropped multipleOf %v", n, value), true
			}
		}
	case "minItems":
		arr, ok := data.([]any)
		min, okMin := toFloat(value)
		if ok && okMin && float64(len(arr)) < min {
			return fmt.Sprintf("array of length %d is shorter than the dropped minItems %v", len(arr), value), true
		}
	case "maxItems":
		arr, ok := data.([]any)
		max, okMax := toFloat(value)
		if ok && okMax && float64(len(arr)) > max {
			return fmt.Sprintf("array of length %d is longer than the dropped maxItems %v", len(arr), value), true
		}
	case "uniqueItems":
		arr, ok := data.([]any)
		wantUnique, _ := value.(bool)
		if ok && wantUnique && hasDuplicate(arr) {
			return "array contains duplicate items but the dropped uniqueItems required them unique", true
		}
	}
	return "", false
}

func hasDuplicate(arr []any) bool {
	seen := map[string]struct{}{}
	for _, item := range arr {
		b, err := json.Marshal(item)
		if err != nil {
			continue
		}
		if _, ok := seen[string(b)]; ok {
			return true
		}
		seen[string(b)] = struct{}{}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (w *walker) invertMapToArray(data any, rec codec.TransformRecord, path string) (any, error) {
	arr, ok := asSlice(data)
	if !ok {
		return data, nil
	}
	keyField := rec.KeyField
	if keyField == "" {
		keyField = "key"
	}
	out := make(map[string]any, len(arr))
	for _, item := range arr {
		entry, isMap := asMap(item)
		if !isMap {
			continue
		}
		key, _ := entry[keyField].(string)
		if _, dup := out[key]; dup {
			w.warn(path, path, "duplicate_map_key", fmt.Sprintf("key %q appeared more than once; last value wins", key))
		}
		out[key] = entry["value"]
	}
	return out, nil
}

func invertOpaqueString(data any) (any, string) {
	s, isString := data.(string)
	if !isString {
		return data, ""
	}
	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return data, "could not parse opaque string back into structured data: " + err.Error()
	}
	return parsed, ""
}

// structurallyFits is a lightweight type-compatibility check used to choose
// which anyOf/oneOf branch of the ORIGINAL schema a piece of data came from,
// since Pass 2 only renamed oneOf to anyOf and recorded no codec entry
// identifying the winning branch.
func structurallyFits(data any, branch map[string]any) bool {
	types := branchTypes(branch)
	if len(types) == 0 {
		return true
	}
	kind := dataKind(data)
	for _, t := range types {
		if t == kind {
			return true
		}
	}
	return false
}

func branchTypes(m map[string]any) []string {
	switch t := m["type"].(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func dataKind(v any) string {
	switch x := v.(type) {
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
	case float64:
		if x == float64(int64(x)) {
			return "integer"
		}
		return "number"
	default:
		return "number"
	}
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}
