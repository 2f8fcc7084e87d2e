package codec

import (
	"strings"

	json "github.com/goccy/go-json"
)

// knownTransformFields lists the wire keys TransformRecord understands, for
// splitting a newer minor codec version's extra fields into Extra rather
// than silently dropping them on a read-modify-write round trip.
var knownTransformFields = knownSet("path", "type", "keyField", "originalRef", "originalRequired", "wrapperField")

func knownSet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// MarshalJSON implements lossless round-tripping: known fields win over Extra.
func (r TransformRecord) MarshalJSON() ([]byte, error) {
	type wire TransformRecord
	knownBytes, err := json.Marshal(wire(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return knownBytes, nil
	}

	var known map[string]json.RawMessage
	if err := json.Unmarshal(knownBytes, &known); err != nil {
		return nil, err
	}
	out := map[string]json.RawMessage{}
	for k, v := range r.Extra {
		out[k] = v
	}
	for k, v := range known {
		out[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits unrecognized wire fields into Extra so a future minor
// codec version's fields survive a read-modify-write cycle on an older build.
func (r *TransformRecord) UnmarshalJSON(data []byte) error {
	type wire TransformRecord
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = TransformRecord(w)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if _, ok := knownTransformFields[k]; ok {
			continue
		}
		if r.Extra == nil {
			r.Extra = map[string]json.RawMessage{}
		}
		r.Extra[k] = v
	}
	return nil
}

// Marshal serializes a Codec to its wire JSON form.
func Marshal(c Codec) ([]byte, error) {
	return json.Marshal(c)
}

// Unmarshal parses a codec file. It does not check the $schema URI;
// major-version extraction and comparison happen in the caller, which knows
// the expected major — see llmschema.checkCodecVersion.
func Unmarshal(data []byte) (Codec, error) {
	var c Codec
	if err := json.Unmarshal(data, &c); err != nil {
		return Codec{}, err
	}
	if c.Transforms == nil {
		c.Transforms = []TransformRecord{}
	}
	if c.DroppedConstraints == nil {
		c.DroppedConstraints = []DroppedConstraint{}
	}
	return c, nil
}

// MajorVersion extracts the integer major version component from a codec
// $schema URI of the form ".../codec/vN". Returns -1 if the URI doesn't match
// that shape at all.
func MajorVersion(schemaURI string) int {
	i := strings.LastIndexByte(schemaURI, 'v')
	if i < 0 || i+1 >= len(schemaURI) {
		return -1
	}
	n := 0
	found := false
	for _, r := range schemaURI[i+1:] {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
		found = true
	}
	if !found {
		return -1
	}
	return n
}
