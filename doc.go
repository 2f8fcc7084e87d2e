// Package llmschema compiles arbitrary JSON Schema (Draft 2020-12 and
// earlier variants) into the constrained subset accepted by LLM structured-
// output APIs (OpenAI Strict, Google Gemini, Anthropic Claude), and provides
// the matching Rehydrate step that restores a model's output to the shape
// the original schema describes.
//
// Convert and Rehydrate are pure: neither touches the filesystem or network,
// and calling either twice with the same input produces byte-identical
// output (spec.md §5).
package llmschema
