package llmschema

import (
	"github.com/jsonschema-llm/llmschema/internal/compiler"
	"github.com/jsonschema-llm/llmschema/schemaerr"
)

// JSONSchema is a parsed JSON Schema document: the root is always an object
// (map[string]any) or one of the two boolean shorthands (spec.md §2).
type JSONSchema = any

// ProviderCompatDiagnostic is an advisory, non-fatal finding Pass 9 emits
// (spec.md §4.11) — a schema that will still work but that a provider is
// known to handle poorly (excess nesting depth, a heterogeneous enum).
type ProviderCompatDiagnostic struct {
	Path    string
	Kind    string
	Message string
}

// Result is Convert's return value.
type Result struct {
	APIVersion  string
	Schema      JSONSchema
	Codec       Codec
	Diagnostics []ProviderCompatDiagnostic
}

// Convert runs the nine-pass pipeline over schema for opts.Target,
// returning the rewritten schema, the codec describing every reversible
// transform applied, and any advisory provider-compatibility diagnostics.
//
// Convert is pure and fails fast: the first schemaerr.Error any pass raises
// is returned verbatim, with no partial Result (spec.md §7).
func Convert(schema JSONSchema, opts Options) (Result, error) {
	opts = opts.normalize()
	if opts.Polymorphism == PolymorphismFlatten {
		return Result{}, schemaerr.New(schemaerr.UnsupportedFeature, compiler.Root,
			"polymorphism mode %q is reserved and not implemented", opts.Polymorphism)
	}

	ctx := compiler.NewContext(schema, opts.toCompilerOptions())
	rewritten, err := compiler.Run(ctx, schema)
	if err != nil {
		return Result{}, err
	}

	diagnostics := make([]ProviderCompatDiagnostic, 0, len(ctx.Diagnostics))
	for _, d := range ctx.Diagnostics {
		diagnostics = append(diagnostics, ProviderCompatDiagnostic{Path: d.Path, Kind: d.Kind, Message: d.Message})
	}

	return Result{
		APIVersion:  apiVersion,
		Schema:      rewritten,
		Codec:       ctx.Codec,
		Diagnostics: diagnostics,
	}, nil
}
