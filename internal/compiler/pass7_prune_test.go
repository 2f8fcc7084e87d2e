package compiler

import "testing"

func TestPass7Prune_ConstBecomesSingleValueEnum(t *testing.T) {
	schema := map[string]any{"const": "fixed"}
	ctx := newTestContext(TargetOpenAIStrict)
	out, err := Pass7Prune(ctx, schema)
	if err != nil {
		t.Fatalf("Pass7Prune: %v", err)
	}
	m := out.(map[string]any)
	if _, has := m["const"]; has {
		t.Fatalf("expected const removed, got %v", m)
	}
	enum, ok := m["enum"].([]any)
	if !ok || len(enum) != 1 || enum[0] != "fixed" {
		t.Fatalf("expected single-value enum, got %v", m["enum"])
	}
}

func TestPass7Prune_PreservesConstForGemini(t *testing.T) {
	schema := map[string]any{"const": "fixed"}
	ctx := newTestContext(TargetGemini)
	out, err := Pass7Prune(ctx, schema)
	if err != nil {
		t.Fatalf("Pass7Prune: %v", err)
	}
	m := out.(map[string]any)
	if m["const"] != "fixed" {
		t.Fatalf("expected const preserved for gemini, got %v", m)
	}
}

func TestPass7Prune_DropsUnsupportedKeywordsAndRecords(t *testing.T) {
	schema := map[string]any{
		"type":      "string",
		"minLength": 1.0,
		"format":    "email",
	}
	ctx := newTestContext(TargetOpenAIStrict)
	out, err := Pass7Prune(ctx, schema)
	if err != nil {
		t.Fatalf("Pass7Prune: %v", err)
	}
	m := out.(map[string]any)
	if _, has := m["minLength"]; has {
		t.Fatalf("expected minLength dropped, got %v", m)
	}
	if _, has := m["format"]; has {
		t.Fatalf("expected format dropped, got %v", m)
	}
	if len(ctx.Codec.DroppedConstraints) != 2 {
		t.Fatalf("expected 2 dropped-constraint records, got %d", len(ctx.Codec.DroppedConstraints))
	}
}

func TestPass7Prune_SortsEnumDefaultFirst(t *testing.T) {
	schema := map[string]any{
		"enum":    []any{"a", "b", "c"},
		"default": "b",
	}
	ctx := newTestContext(TargetOpenAIStrict)
	out, err := Pass7Prune(ctx, schema)
	if err != nil {
		t.Fatalf("Pass7Prune: %v", err)
	}
	m := out.(map[string]any)
	enum := m["enum"].([]any)
	if enum[0] != "b" {
		t.Fatalf("expected default value first, got %v", enum)
	}
}
