package codec

import (
	"strings"
	"testing"
)

func TestCodec_RoundTripsTransforms(t *testing.T) {
	c := New()
	c.MapToArray("#/properties/tags", "key")
	c.NullableOptional("#/properties/nick")
	c.RootObjectWrapper("result")
	c.DroppedConstraint("#/properties/age", "minimum", float64(0))

	data, err := Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.SchemaURI != SchemaURI {
		t.Fatalf("schema uri: got %q want %q", got.SchemaURI, SchemaURI)
	}
	if len(got.Transforms) != 3 {
		t.Fatalf("expected 3 transforms, got %d", len(got.Transforms))
	}
	if got.Transforms[0].Type != TagMapToArray || got.Transforms[0].KeyField != "key" {
		t.Fatalf("transform[0] mismatch: %+v", got.Transforms[0])
	}
	if got.Transforms[1].Type != TagNullableOptional {
		t.Fatalf("transform[1] mismatch: %+v", got.Transforms[1])
	}
	if got.Transforms[2].Type != TagRootObjectWrapper || got.Transforms[2].WrapperField != "result" {
		t.Fatalf("transform[2] mismatch: %+v", got.Transforms[2])
	}
	if len(got.DroppedConstraints) != 1 || got.DroppedConstraints[0].Constraint != "minimum" {
		t.Fatalf("dropped constraints mismatch: %+v", got.DroppedConstraints)
	}
}

func TestCodec_UnknownFieldsSurviveRoundTrip(t *testing.T) {
	// Simulates reading a file produced by a future minor codec version that
	// added a field this build doesn't know about.
	raw := []byte(`{"path":"#/properties/x","type":"map_to_array","keyField":"key","futureField":"keepme"}`)

	var rec TransformRecord
	if err := rec.UnmarshalJSON(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Extra["futureField"] == nil {
		t.Fatalf("expected futureField preserved in Extra, got %+v", rec.Extra)
	}

	out, err := rec.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"futureField":"keepme"`) {
		t.Fatalf("expected futureField to survive round trip, got %s", string(out))
	}
}

func TestMajorVersion(t *testing.T) {
	cases := []struct {
		uri  string
		want int
	}{
		{"https://jsonschema-llm.dev/codec/v1", 1},
		{"https://jsonschema-llm.dev/codec/v2", 2},
		{"https://jsonschema-llm.dev/codec/v10", 10},
		{"not-a-uri", -1},
	}
	for _, tc := range cases {
		if got := MajorVersion(tc.uri); got != tc.want {
			t.Errorf("MajorVersion(%q) = %d, want %d", tc.uri, got, tc.want)
		}
	}
}
