// Package schemaerr defines the stable error taxonomy surfaced by Convert and
// Rehydrate. Consumers match on Code, never on Message text.
package schemaerr

import (
	"fmt"

	"github.com/kaptinlin/go-i18n"
)

// Code is one of a fixed set of stable string identifiers.
type Code string

const (
	JSONParseError         Code = "json_parse_error"
	SchemaError            Code = "schema_error"
	UnresolvableRef        Code = "unresolvable_ref"
	RecursionDepthExceeded Code = "recursion_depth_exceeded"
	UnsupportedFeature     Code = "unsupported_feature"
	RehydrationError       Code = "rehydration_error"
	CodecVersionMismatch   Code = "codec_version_mismatch"
)

// Error is the structured error payload every failing Convert/Rehydrate call returns.
//
// Path is either the schema pointer for conversion errors or the data pointer
// for rehydration errors, matching the ConvertOptions/RehydrateOptions contract.
type Error struct {
	Code    Code
	Message string
	Path    string
	Params  map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Localize resolves a translated message for this error's Code through the
// supplied localizer, falling back to Error() when no translation exists.
func (e *Error) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	params := e.Params
	if params == nil {
		params = map[string]any{}
	}
	params["message"] = e.Message
	params["path"] = e.Path
	if s := localizer.Get(string(e.Code), i18n.Vars(params)); s != "" {
		return s
	}
	return e.Error()
}

// New constructs a schema-path error (used throughout Convert's passes).
func New(code Code, path, message string, args ...any) *Error {
	return &Error{Code: code, Path: path, Message: fmt.Sprintf(message, args...)}
}

// Wrap constructs an error carrying an underlying cause, preserving errors.Unwrap chains.
func Wrap(code Code, path string, cause error) *Error {
	return &Error{Code: code, Path: path, Message: cause.Error(), cause: cause}
}

// WithParams attaches localization parameters and returns the same error for chaining.
func (e *Error) WithParams(params map[string]any) *Error {
	e.Params = params
	return e
}
