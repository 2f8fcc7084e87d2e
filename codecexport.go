package llmschema

import "github.com/jsonschema-llm/llmschema/codec"

// Codec is the append-only transform record Convert returns alongside the
// converted schema and Rehydrate consumes; re-exported so a caller that only
// stores and replays codec files never needs to import the codec package by
// name.
type Codec = codec.Codec

// MarshalCodec and UnmarshalCodec serialize a Codec to/from its wire JSON
// form (spec.md §6.2).
func MarshalCodec(c Codec) ([]byte, error) {
	return codec.Marshal(c)
}

func UnmarshalCodec(data []byte) (Codec, error) {
	return codec.Unmarshal(data)
}
