package llmschema

import "github.com/jsonschema-llm/llmschema/schemaerr"

// Error is the structured error every failing Convert/Rehydrate call
// returns; re-exported so callers never need to import schemaerr directly
// for the common case of a type-switch on Code.
type Error = schemaerr.Error

// Code identifies the stable, documented error taxonomy (spec.md §6.4).
type Code = schemaerr.Code

const (
	JSONParseError         = schemaerr.JSONParseError
	SchemaError            = schemaerr.SchemaError
	UnresolvableRef        = schemaerr.UnresolvableRef
	RecursionDepthExceeded = schemaerr.RecursionDepthExceeded
	UnsupportedFeature     = schemaerr.UnsupportedFeature
	RehydrationError       = schemaerr.RehydrationError
	CodecVersionMismatch   = schemaerr.CodecVersionMismatch
)
