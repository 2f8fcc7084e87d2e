package llmschema

import (
	"errors"
	"testing"
)

func TestConvert_OpenAIStrictClosesRootObject(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
		"required": []any{"name"},
	}

	res, err := Convert(schema, DefaultOptions(TargetOpenAIStrict))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	m := res.Schema.(map[string]any)
	if m["additionalProperties"] != false {
		t.Fatalf("expected closed object, got %v", m)
	}
	if res.APIVersion != apiVersion {
		t.Fatalf("expected apiVersion stamped, got %q", res.APIVersion)
	}
}

func TestConvert_GeminiLeavesDictionariesOpen(t *testing.T) {
	schema := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "number"},
	}
	res, err := Convert(schema, DefaultOptions(TargetGemini))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	m := res.Schema.(map[string]any)
	if _, has := m["additionalProperties"]; !has {
		t.Fatalf("expected gemini dictionary left untouched, got %v", m)
	}
}

func TestConvert_RejectsFlattenPolymorphism(t *testing.T) {
	opts := DefaultOptions(TargetClaude)
	opts.Polymorphism = PolymorphismFlatten
	_, err := Convert(map[string]any{"type": "string"}, opts)
	if err == nil {
		t.Fatalf("expected an error for the reserved flatten polymorphism mode")
	}
	var schemaErr *Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected a *Error, got %T: %v", err, err)
	}
	if schemaErr.Code != UnsupportedFeature {
		t.Fatalf("expected UnsupportedFeature, got %v", schemaErr.Code)
	}
}

func TestConvert_WrapsNonObjectRootForOpenAI(t *testing.T) {
	res, err := Convert(map[string]any{"type": "string"}, DefaultOptions(TargetOpenAIStrict))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	m := res.Schema.(map[string]any)
	if m["type"] != "object" {
		t.Fatalf("expected wrapped object root, got %v", m)
	}
}

func TestConvertThenRehydrate_RestoresDictionaryShape(t *testing.T) {
	original := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "number"},
	}
	res, err := Convert(original, DefaultOptions(TargetOpenAIStrict))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	converted := map[string]any{
		"result": []any{
			map[string]any{"key": "a", "value": 1.0},
		},
	}

	rr, err := Rehydrate(converted, res.Codec, original)
	if err != nil {
		t.Fatalf("Rehydrate: %v", err)
	}
	m, ok := rr.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", rr.Data)
	}
	if m["a"] != 1.0 {
		t.Fatalf("expected restored dictionary, got %v", m)
	}
	if rr.APIVersion != apiVersion {
		t.Fatalf("expected apiVersion stamped, got %q", rr.APIVersion)
	}
}
