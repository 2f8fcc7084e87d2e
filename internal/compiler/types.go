// Package compiler implements the nine-pass schema-to-schema pipeline: each
// pass is a pure function from (schema, *Context) to a rewritten schema,
// sharing a Walker, a RefContext, and the Codec accumulator.
package compiler

import (
	"github.com/jsonschema-llm/llmschema/codec"
	"github.com/jsonschema-llm/llmschema/schemaerr"
)

// Node is a schema node: either an object (map[string]any) or a boolean
// shorthand (true = allow anything, false = allow nothing).
type Node = any

// Target is the closed set of LLM structured-output providers this compiler
// targets. Target-conditional behavior throughout the pipeline is a switch
// over this enum, never a strategy object or plugin.
type Target string

const (
	TargetOpenAIStrict Target = "openai-strict"
	TargetGemini       Target = "gemini"
	TargetClaude       Target = "claude"
)

// Mode toggles strict enforcement (Pass 6): permissive skips it. Pass 7's
// pruning does not depend on Mode and runs the same in both modes.
type Mode string

const (
	ModeStrict     Mode = "strict"
	ModePermissive Mode = "permissive"
)

// Polymorphism selects how Pass 2 rewrites oneOf. Only PolymorphismAnyOf is
// implemented; PolymorphismFlatten is reserved (spec §6.1).
type Polymorphism string

const (
	PolymorphismAnyOf   Polymorphism = "any-of"
	PolymorphismFlatten Polymorphism = "flatten"
)

// Options mirrors the ConvertOptions contract (spec §6.1), already defaulted
// by the caller (llmschema.Options.normalize).
type Options struct {
	Target         Target
	Mode           Mode
	MaxDepth       int
	RecursionLimit int
	Polymorphism   Polymorphism
}

// Diagnostic is an advisory, non-fatal finding emitted by Pass 9.
type Diagnostic struct {
	Path    string
	Kind    string
	Message string
}

// Context threads the shared helpers through every pass. A Context is always
// freshly constructed per Convert call — nothing here is shared across calls.
type Context struct {
	Opts        Options
	Root        Node
	Walker      *Walker
	Refs        *RefContext
	Codec       codec.Codec
	Diagnostics []Diagnostic
}

// NewContext builds a fresh per-call Context rooted at root.
func NewContext(root Node, opts Options) *Context {
	return &Context{
		Opts:   opts,
		Root:   root,
		Walker: NewWalker(opts.MaxDepth),
		Refs:   NewRefContext(opts.RecursionLimit),
		Codec:  codec.New(),
	}
}

func (c *Context) diagnostic(path, kind, message string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Path: path, Kind: kind, Message: message})
}

// fail is a convenience wrapper so every pass raises errors through the same
// schemaerr constructor, keeping path/message formatting consistent.
func fail(code schemaerr.Code, path, message string, args ...any) error {
	return schemaerr.New(code, path, message, args...)
}
