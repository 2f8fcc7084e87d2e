package compiler

import "testing"

func TestPass4Opaque_ConvertsBareTrueSchema(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"extra": true},
	}
	ctx := newTestContext(TargetOpenAIStrict)
	out, err := Pass4Opaque(ctx, schema)
	if err != nil {
		t.Fatalf("Pass4Opaque: %v", err)
	}
	m := out.(map[string]any)
	props := m["properties"].(map[string]any)
	extra, ok := props["extra"].(map[string]any)
	if !ok {
		t.Fatalf("expected extra to become an opaque object, got %v", props["extra"])
	}
	if extra["type"] != "string" {
		t.Fatalf("expected opaque fallback type string, got %v", extra["type"])
	}
}

func TestPass4Opaque_ConvertsEmptyObjectSchema(t *testing.T) {
	schema := map[string]any{"type": "object"}
	ctx := newTestContext(TargetOpenAIStrict)
	out, err := Pass4Opaque(ctx, schema)
	if err != nil {
		t.Fatalf("Pass4Opaque: %v", err)
	}
	m := out.(map[string]any)
	if m["type"] != "string" {
		t.Fatalf("expected bare object schema to become opaque string, got %v", m)
	}
}

func TestPass4Opaque_LeavesClosedObjectAlone(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"name": map[string]any{"type": "string"}},
	}
	ctx := newTestContext(TargetOpenAIStrict)
	out, err := Pass4Opaque(ctx, schema)
	if err != nil {
		t.Fatalf("Pass4Opaque: %v", err)
	}
	m := out.(map[string]any)
	if m["type"] != "object" {
		t.Fatalf("expected well-defined object schema untouched, got %v", m)
	}
}
