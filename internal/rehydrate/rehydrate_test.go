package rehydrate

import (
	"testing"

	"github.com/jsonschema-llm/llmschema/codec"
)

func TestRehydrate_InvertsMapToArray(t *testing.T) {
	original := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "number"},
	}
	data := []any{
		map[string]any{"key": "a", "value": 1.0},
		map[string]any{"key": "b", "value": 2.0},
	}
	c := codec.New()
	c.MapToArray("#", "key")

	res, err := Rehydrate(data, original, c)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	m, ok := res.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", res.Data)
	}
	if m["a"] != 1.0 || m["b"] != 2.0 {
		t.Fatalf("expected inverted map, got %v", m)
	}
}

func TestRehydrate_InvertsRootObjectWrapper(t *testing.T) {
	original := map[string]any{"type": "string"}
	data := map[string]any{"result": "hello"}
	c := codec.New()
	c.RootObjectWrapper("result")

	res, err := Rehydrate(data, original, c)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if res.Data != "hello" {
		t.Fatalf("expected unwrapped scalar, got %v", res.Data)
	}
}

func TestRehydrate_InvertsJSONStringParse(t *testing.T) {
	original := map[string]any{"type": "object"}
	data := map[string]any{"blob": `{"a":1}`}
	originalParent := map[string]any{
		"type":       "object",
		"properties": map[string]any{"blob": original},
	}
	c := codec.New()
	c.JSONStringParse("#/properties/blob")

	res, err := Rehydrate(data, originalParent, c)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	m := res.Data.(map[string]any)
	blob := m["blob"].(map[string]any)
	if blob["a"] != 1.0 {
		t.Fatalf("expected parsed blob, got %v", blob)
	}
}

func TestRehydrate_DropsExplicitNullForNullableOptional(t *testing.T) {
	originalParent := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nickname": map[string]any{"type": "string"},
		},
	}
	data := map[string]any{"nickname": nil}
	c := codec.New()
	c.NullableOptional("#/properties/nickname")

	res, err := Rehydrate(data, originalParent, c)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	m := res.Data.(map[string]any)
	if _, has := m["nickname"]; has {
		t.Fatalf("expected nickname omitted entirely, got %v", m)
	}
}

func TestRehydrate_RejectsIncompatibleCodecVersion(t *testing.T) {
	c := codec.Codec{SchemaURI: "https://jsonschema-llm.dev/codec/v99"}
	_, err := Rehydrate(map[string]any{}, map[string]any{}, c)
	if err == nil {
		t.Fatalf("expected an error for an incompatible codec major version")
	}
}

func TestRehydrate_CoercesStringToNumberDeclaredByOriginalSchema(t *testing.T) {
	original := map[string]any{"type": "number", "minimum": 0.0}
	c := codec.New()
	c.DroppedConstraint("#", "minimum", 0.0)

	res, err := Rehydrate("3.14", original, c)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if res.Data != 3.14 {
		t.Fatalf("expected the string coerced to a float64, got %#v", res.Data)
	}
	foundCoercion := false
	for _, w := range res.Warnings {
		if w.Kind == "coercion_applied" {
			foundCoercion = true
			if w.SchemaPath != "#/minimum" {
				t.Fatalf("expected schema path pointing at the dropped keyword, got %q", w.SchemaPath)
			}
		}
		if w.Kind == "constraint_violation" {
			t.Fatalf("3.14 satisfies minimum 0, expected no violation warning, got %v", w)
		}
	}
	if !foundCoercion {
		t.Fatalf("expected a coercion_applied warning, got %v", res.Warnings)
	}
}

func TestRehydrate_RecordsViolationWhenDataFailsDroppedConstraint(t *testing.T) {
	original := map[string]any{"type": "string", "minLength": 5.0}
	c := codec.New()
	c.DroppedConstraint("#", "minLength", 5.0)

	res, err := Rehydrate("ab", original, c)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if res.Data != "ab" {
		t.Fatalf("expected the string left as-is, got %#v", res.Data)
	}
	found := false
	for _, w := range res.Warnings {
		if w.Kind == "constraint_violation" {
			found = true
			if w.SchemaPath != "#/minLength" {
				t.Fatalf("expected schema path pointing at the dropped keyword, got %q", w.SchemaPath)
			}
		}
	}
	if !found {
		t.Fatalf("expected a constraint_violation warning for a too-short string, got %v", res.Warnings)
	}
}

func TestRehydrate_NoWarningWhenDroppedConstraintIsSatisfied(t *testing.T) {
	original := map[string]any{"type": "string", "minLength": 2.0}
	c := codec.New()
	c.DroppedConstraint("#", "minLength", 2.0)

	res, err := Rehydrate("abcdef", original, c)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings for a value satisfying the dropped constraint, got %v", res.Warnings)
	}
}

func TestRehydrate_MapToArrayDuplicateKeyWarns(t *testing.T) {
	original := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	data := []any{
		map[string]any{"key": "a", "value": "first"},
		map[string]any{"key": "a", "value": "second"},
	}
	c := codec.New()
	c.MapToArray("#", "key")

	res, err := Rehydrate(data, original, c)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	m := res.Data.(map[string]any)
	if m["a"] != "second" {
		t.Fatalf("expected last value to win, got %v", m)
	}
	found := false
	for _, w := range res.Warnings {
		if w.Kind == "duplicate_map_key" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate_map_key warning, got %v", res.Warnings)
	}
}
