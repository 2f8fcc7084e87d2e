package compiler

import "testing"

func TestRun_EndToEndOpenAIStrict(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"tags": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
		},
		"required": []any{"name", "tags"},
	}

	ctx := NewContext(schema, Options{Target: TargetOpenAIStrict, Mode: ModeStrict, MaxDepth: 50, RecursionLimit: 3})
	out, err := Run(ctx, schema)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected object result, got %T", out)
	}
	if m["additionalProperties"] != false {
		t.Fatalf("expected strict closure at root, got %v", m["additionalProperties"])
	}
	props := m["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	if tags["type"] != "array" {
		t.Fatalf("expected dictionary transpilation of tags, got %v", tags)
	}
}

func TestRun_GeminiSkipsStrictAndDictionaryPasses(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
		},
	}
	ctx := NewContext(schema, Options{Target: TargetGemini, Mode: ModeStrict, MaxDepth: 50, RecursionLimit: 3})
	out, err := Run(ctx, schema)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	m := out.(map[string]any)
	if _, has := m["additionalProperties"]; has {
		t.Fatalf("expected gemini schema left open, got %v", m)
	}
	props := m["properties"].(map[string]any)
	tags := props["tags"].(map[string]any)
	if tags["type"] != "object" {
		t.Fatalf("expected tags left as a native dictionary for gemini, got %v", tags)
	}
}
