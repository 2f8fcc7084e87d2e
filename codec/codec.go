// Package codec defines the side-channel of reversible transform records that
// Convert accumulates and Rehydrate replays in reverse. A Codec is a value:
// produced once by Convert, handed to the caller, consumed read-only by
// Rehydrate. It carries no behavior beyond (de)serialization.
package codec

import (
	goccyjson "github.com/goccy/go-json"
)

// SchemaURI is the current codec format version. Rehydrate rejects any codec
// whose major version component differs from this one.
const SchemaURI = "https://jsonschema-llm.dev/codec/v1"

// Tag identifies the kind of a TransformRecord. Values are lower-snake-case,
// matching the wire format exactly (spec §6.2).
type Tag string

const (
	TagMapToArray        Tag = "map_to_array"
	TagJSONStringParse   Tag = "json_string_parse"
	TagRecursiveInflate  Tag = "recursive_inflate"
	TagNullableOptional  Tag = "nullable_optional"
	TagRootObjectWrapper Tag = "root_object_wrapper"
)

// TransformRecord is one reversible rewrite Convert applied at Path, a JSON
// Pointer into the CONVERTED schema. Only the fields relevant to Type are
// populated; the rest are omitted from the wire form.
type TransformRecord struct {
	Path string `json:"path"`
	Type Tag    `json:"type"`

	KeyField         string `json:"keyField,omitempty"`         // map_to_array
	OriginalRef      string `json:"originalRef,omitempty"`      // recursive_inflate
	OriginalRequired *bool  `json:"originalRequired,omitempty"` // nullable_optional
	WrapperField     string `json:"wrapperField,omitempty"`     // root_object_wrapper

	// Extra preserves fields from a newer minor codec version this build
	// doesn't know about, so a file round-trips through an older binary
	// without data loss, the way LosslessFields.Unknown does for a document
	// field this SDK hasn't been taught about yet.
	Extra map[string]goccyjson.RawMessage `json:"-"`
}

// DroppedConstraint records a keyword Pass 7 pruned for the target provider,
// so Rehydrate (or a caller) can perform post-hoc validation against it.
type DroppedConstraint struct {
	Path       string `json:"path"`
	Constraint string `json:"constraint"`
	Value      any    `json:"value"`
}

// Codec is the append-only-during-Convert, read-only-during-Rehydrate record set.
type Codec struct {
	SchemaURI          string              `json:"$schema"`
	Transforms         []TransformRecord   `json:"transforms"`
	DroppedConstraints []DroppedConstraint `json:"droppedConstraints"`
}

// New returns an empty Codec stamped with the current format version.
func New() Codec {
	return Codec{SchemaURI: SchemaURI, Transforms: []TransformRecord{}, DroppedConstraints: []DroppedConstraint{}}
}

// MapToArray appends a map_to_array record at path.
func (c *Codec) MapToArray(path, keyField string) {
	c.Transforms = append(c.Transforms, TransformRecord{Path: path, Type: TagMapToArray, KeyField: keyField})
}

// JSONStringParse appends a json_string_parse record at path.
func (c *Codec) JSONStringParse(path string) {
	c.Transforms = append(c.Transforms, TransformRecord{Path: path, Type: TagJSONStringParse})
}

// RecursiveInflate appends a recursive_inflate record at path.
func (c *Codec) RecursiveInflate(path, originalRef string) {
	c.Transforms = append(c.Transforms, TransformRecord{Path: path, Type: TagRecursiveInflate, OriginalRef: originalRef})
}

// NullableOptional appends a nullable_optional record at path.
func (c *Codec) NullableOptional(path string) {
	originalRequired := false
	c.Transforms = append(c.Transforms, TransformRecord{Path: path, Type: TagNullableOptional, OriginalRequired: &originalRequired})
}

// RootObjectWrapper appends the (singular, at most one) root_object_wrapper record.
func (c *Codec) RootObjectWrapper(wrapperField string) {
	c.Transforms = append(c.Transforms, TransformRecord{Path: "#", Type: TagRootObjectWrapper, WrapperField: wrapperField})
}

// DroppedConstraint appends a dropped-constraint record.
func (c *Codec) DroppedConstraint(path, constraint string, value any) {
	c.DroppedConstraints = append(c.DroppedConstraints, DroppedConstraint{Path: path, Constraint: constraint, Value: value})
}

// TransformsAt returns every transform record whose Path equals path, in
// accumulation order. A path may carry more than one record (e.g. a Pass 5
// cutover node with both a recursive_inflate and a json_string_parse record,
// or a map root at "#" that was turned into pairs and then wrapped).
func (c *Codec) TransformsAt(path string) []TransformRecord {
	var out []TransformRecord
	for _, t := range c.Transforms {
		if t.Path == path {
			out = append(out, t)
		}
	}
	return out
}
