package llmschema

import "github.com/jsonschema-llm/llmschema/internal/compiler"

// Target selects which provider's structured-output dialect Convert emits.
type Target = compiler.Target

const (
	TargetOpenAIStrict = compiler.TargetOpenAIStrict
	TargetGemini       = compiler.TargetGemini
	TargetClaude       = compiler.TargetClaude
)

// Mode toggles Pass 6's strict-object enforcement.
type Mode = compiler.Mode

const (
	ModeStrict     = compiler.ModeStrict
	ModePermissive = compiler.ModePermissive
)

// Polymorphism selects how Pass 2 rewrites oneOf. PolymorphismFlatten is
// reserved and not implemented; selecting it fails Convert with
// schemaerr.UnsupportedFeature.
type Polymorphism = compiler.Polymorphism

const (
	PolymorphismAnyOf   = compiler.PolymorphismAnyOf
	PolymorphismFlatten = compiler.PolymorphismFlatten
)

// Options configures Convert. The zero Options is invalid only in that
// Target defaults to "" (no target); call DefaultOptions or set Target
// explicitly. Every other field has a usable default applied by normalize.
type Options struct {
	Target         Target
	Mode           Mode
	MaxDepth       int
	RecursionLimit int
	Polymorphism   Polymorphism
}

// DefaultOptions returns Options for target with every other field at its
// spec.md §6.1 default: Mode strict, MaxDepth 50, RecursionLimit 3,
// Polymorphism any-of.
func DefaultOptions(target Target) Options {
	return Options{
		Target:         target,
		Mode:           ModeStrict,
		MaxDepth:       50,
		RecursionLimit: 3,
		Polymorphism:   PolymorphismAnyOf,
	}
}

// normalize fills in zero-valued fields with their defaults, the way
// ConvertOptions.normalize does in the teacher's Normalizer construction.
func (o Options) normalize() Options {
	if o.Mode == "" {
		o.Mode = ModeStrict
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = 50
	}
	if o.RecursionLimit == 0 {
		o.RecursionLimit = 3
	}
	if o.Polymorphism == "" {
		o.Polymorphism = PolymorphismAnyOf
	}
	return o
}

func (o Options) toCompilerOptions() compiler.Options {
	return compiler.Options{
		Target:         o.Target,
		Mode:           o.Mode,
		MaxDepth:       o.MaxDepth,
		RecursionLimit: o.RecursionLimit,
		Polymorphism:   o.Polymorphism,
	}
}
