package llmschema

import "testing"

// Scenarios S1-S6 from the worked-example walkthrough, one subtest each.
func TestScenarios(t *testing.T) {
	t.Run("S1_MapOfStrings", func(t *testing.T) {
		schema := map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		}
		res, err := Convert(schema, DefaultOptions(TargetOpenAIStrict))
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		root := res.Schema.(map[string]any)
		if root["type"] != "object" {
			t.Fatalf("expected wrapped object root, got %v", root)
		}
		props := root["properties"].(map[string]any)
		result := props["result"].(map[string]any)
		if result["type"] != "array" {
			t.Fatalf("expected result to be array-of-pairs, got %v", result)
		}

		data := map[string]any{
			"result": []any{
				map[string]any{"key": "a", "value": "1"},
				map[string]any{"key": "b", "value": "2"},
			},
		}
		rr, err := Rehydrate(data, res.Codec, schema)
		if err != nil {
			t.Fatalf("Rehydrate: %v", err)
		}
		m := rr.Data.(map[string]any)
		if m["a"] != "1" || m["b"] != "2" {
			t.Fatalf("expected restored map, got %v", m)
		}
	})

	t.Run("S2_OptionalField", func(t *testing.T) {
		schema := map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
				"nick": map[string]any{"type": "string"},
			},
			"required": []any{"name"},
		}
		res, err := Convert(schema, DefaultOptions(TargetOpenAIStrict))
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		root := res.Schema.(map[string]any)
		required := root["required"].([]any)
		if len(required) != 2 {
			t.Fatalf("expected both properties required, got %v", required)
		}
		props := root["properties"].(map[string]any)
		nick := props["nick"].(map[string]any)
		anyOf, ok := nick["anyOf"].([]any)
		if !ok || len(anyOf) != 2 {
			t.Fatalf("expected nick rewritten as nullable anyOf, got %v", nick)
		}

		data := map[string]any{"name": "Ada", "nick": nil}
		rr, err := Rehydrate(data, res.Codec, schema)
		if err != nil {
			t.Fatalf("Rehydrate: %v", err)
		}
		m := rr.Data.(map[string]any)
		if m["name"] != "Ada" {
			t.Fatalf("expected name preserved, got %v", m)
		}
		if _, has := m["nick"]; has {
			t.Fatalf("expected nick omitted after rehydration, got %v", m)
		}
	})

	t.Run("S3_RecursiveTree", func(t *testing.T) {
		node := map[string]any{
			"type": "object",
			"properties": map[string]any{
				"v": map[string]any{"type": "string"},
				"kids": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/N"},
				},
			},
		}
		schema := map[string]any{
			"$defs": map[string]any{"N": node},
			"$ref":  "#/$defs/N",
		}
		opts := DefaultOptions(TargetOpenAIStrict)
		opts.RecursionLimit = 2
		res, err := Convert(schema, opts)
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		// RecursionLimit=2 inlines the root node and one further "kids" level;
		// the third level's "kids.items" is the one that must go opaque.
		const wantPath = "#/properties/kids/items/properties/kids/items"
		var inflate *struct {
			Path        string
			OriginalRef string
		}
		for _, tr := range res.Codec.Transforms {
			if tr.Type == "recursive_inflate" {
				inflate = &struct {
					Path        string
					OriginalRef string
				}{tr.Path, tr.OriginalRef}
			}
		}
		if inflate == nil {
			t.Fatalf("expected a recursive_inflate codec record, got %v", res.Codec.Transforms)
		}
		if inflate.Path != wantPath {
			t.Fatalf("expected the opaque cutover at the third nesting level (%s), got %s", wantPath, inflate.Path)
		}
		if inflate.OriginalRef != "#/$defs/N" {
			t.Fatalf("expected the recorded ref target to be #/$defs/N, got %s", inflate.OriginalRef)
		}
	})

	t.Run("S4_HeterogeneousEnum", func(t *testing.T) {
		schema := map[string]any{
			"type": "object",
			"properties": map[string]any{
				"color": map[string]any{"enum": []any{"red", 1.0, true}},
			},
			"required": []any{"color"},
		}
		res, err := Convert(schema, DefaultOptions(TargetOpenAIStrict))
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		found := false
		for _, d := range res.Diagnostics {
			if d.Kind == "heterogeneous_enum" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected a heterogeneous_enum diagnostic, got %v", res.Diagnostics)
		}
	})

	t.Run("S5_OneOfWithDiscriminator", func(t *testing.T) {
		a := map[string]any{
			"type":       "object",
			"properties": map[string]any{"type": map[string]any{"const": "a"}},
			"required":   []any{"type"},
		}
		b := map[string]any{
			"type":       "object",
			"properties": map[string]any{"type": map[string]any{"const": "b"}},
			"required":   []any{"type"},
		}
		schema := map[string]any{
			"oneOf":         []any{a, b},
			"discriminator": map[string]any{"propertyName": "type"},
		}
		res, err := Convert(schema, DefaultOptions(TargetOpenAIStrict))
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		root := res.Schema.(map[string]any)
		if _, has := root["oneOf"]; has {
			t.Fatalf("expected oneOf rewritten, got %v", root)
		}
		if _, has := root["anyOf"]; !has {
			t.Fatalf("expected anyOf in place of oneOf, got %v", root)
		}
		if _, has := root["discriminator"]; !has {
			t.Fatalf("expected discriminator preserved, got %v", root)
		}
	})

	t.Run("S6_AllOfMerge", func(t *testing.T) {
		schema := map[string]any{
			"allOf": []any{
				map[string]any{
					"type":       "object",
					"properties": map[string]any{"id": map[string]any{"type": "string"}},
					"required":   []any{"id"},
				},
				map[string]any{
					"type":       "object",
					"properties": map[string]any{"name": map[string]any{"type": "string"}},
					"required":   []any{"name"},
				},
			},
		}
		res, err := Convert(schema, DefaultOptions(TargetOpenAIStrict))
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		root := res.Schema.(map[string]any)
		if _, has := root["allOf"]; has {
			t.Fatalf("expected allOf merged away, got %v", root)
		}
		required := root["required"].([]any)
		if len(required) != 2 {
			t.Fatalf("expected id and name both required, got %v", required)
		}
		if root["additionalProperties"] != false {
			t.Fatalf("expected closed object, got %v", root)
		}
	})
}
