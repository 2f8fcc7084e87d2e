package llmschema

import (
	"github.com/jsonschema-llm/llmschema/internal/rehydrate"
)

// Warning is a recoverable anomaly Rehydrate noticed; reconstruction
// continues past one (spec.md §7). Kind is one of "constraint_violation",
// "coercion_applied", "duplicate_map_key", "parse_failure" (spec.md §4.12).
type Warning struct {
	DataPath   string
	SchemaPath string
	Kind       string
	Message    string
}

// RehydrateResult is Rehydrate's return value.
type RehydrateResult struct {
	APIVersion string
	Data       any
	Warnings   []Warning
}

// Rehydrate inverts Convert: given data shaped to the schema Convert
// produced, the Codec Convert returned, and the ORIGINAL schema (the one
// passed to Convert, before any pass rewrote it), it restores data to the
// shape the original schema describes.
//
// Rehydrate is advisory past the initial codec-version check: a malformed
// opaque string or a dropped constraint becomes a Warning and reconstruction
// continues, rather than failing the whole call (spec.md §7).
func Rehydrate(data any, c Codec, original JSONSchema) (RehydrateResult, error) {
	if err := checkCodecVersion(c); err != nil {
		return RehydrateResult{}, err
	}

	res, err := rehydrate.Rehydrate(data, original, c)
	if err != nil {
		return RehydrateResult{}, err
	}

	warnings := make([]Warning, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		warnings = append(warnings, Warning{DataPath: w.DataPath, SchemaPath: w.SchemaPath, Kind: w.Kind, Message: w.Message})
	}

	return RehydrateResult{
		APIVersion: apiVersion,
		Data:       res.Data,
		Warnings:   warnings,
	}, nil
}
