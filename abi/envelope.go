// Package abi defines the wire shapes a foreign-function or WASM host would
// marshal across a process boundary to call Convert/Rehydrate out-of-process
// (spec.md §6.3). It is types-only: no allocator, no exported alloc/free/
// abi_version symbols, and no actual FFI binding — that host is a separate,
// out-of-scope artifact that would import this package.
package abi

import (
	goccyjson "github.com/goccy/go-json"

	"github.com/jsonschema-llm/llmschema/codec"
)

// ResultEnvelope is the fixed-size header a host reads after an FFI call
// returns, describing where the JSON-encoded payload (a ConvertResponse or
// an ErrorPayload) lives in shared memory. Allocation and the pointer's
// lifetime are the host's responsibility; this struct only documents the
// shape the host and this library agree on.
type ResultEnvelope struct {
	Status     Status `json:"status"`
	PayloadPtr uint64 `json:"payloadPtr"`
	PayloadLen uint64 `json:"payloadLen"`
}

// Status is the outcome discriminant a host checks before decoding the
// payload as a success or error shape.
type Status uint32

const (
	StatusOK    Status = 0
	StatusError Status = 1
)

// ConvertRequest is the JSON body a host sends to invoke Convert.
type ConvertRequest struct {
	Schema  goccyjson.RawMessage `json:"schema"`
	Target  string               `json:"target"`
	Mode    string               `json:"mode,omitempty"`
	Options goccyjson.RawMessage `json:"options,omitempty"`

	// Extra carries request fields from a newer minor ABI version a host
	// sent that this build doesn't recognize, so a round-trip (e.g. a proxy
	// relaying requests between two differently-versioned builds) doesn't
	// silently drop them.
	Extra map[string]goccyjson.RawMessage `json:"-"`
}

// ConvertResponse is the JSON body Convert's result is marshaled into.
type ConvertResponse struct {
	Schema      goccyjson.RawMessage `json:"schema"`
	Codec       codec.Codec          `json:"codec"`
	Diagnostics []Diagnostic         `json:"diagnostics,omitempty"`

	Extra map[string]goccyjson.RawMessage `json:"-"`
}

// Diagnostic mirrors compiler.Diagnostic for the wire boundary, since the
// internal package type is not importable from outside the module.
type Diagnostic struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RehydrateRequest is the JSON body a host sends to invoke Rehydrate.
type RehydrateRequest struct {
	Data           goccyjson.RawMessage `json:"data"`
	OriginalSchema goccyjson.RawMessage `json:"originalSchema"`
	Codec          codec.Codec          `json:"codec"`

	Extra map[string]goccyjson.RawMessage `json:"-"`
}

// RehydrateResponse is the JSON body Rehydrate's result is marshaled into.
type RehydrateResponse struct {
	Data     goccyjson.RawMessage `json:"data"`
	Warnings []string             `json:"warnings,omitempty"`

	Extra map[string]goccyjson.RawMessage `json:"-"`
}

// ErrorPayload is the JSON body returned when Status is StatusError.
type ErrorPayload struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Path    string         `json:"path,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}
