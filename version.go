package llmschema

import (
	"github.com/jsonschema-llm/llmschema/codec"
	"github.com/jsonschema-llm/llmschema/schemaerr"
)

// apiVersion is stamped onto every Result/RehydrateResult, independent of
// the codec format version (codec.SchemaURI) — the two evolve separately,
// the same distinction the teacher draws between a document's schema
// version and the tool's own release version.
const apiVersion = "v1"

// checkCodecVersion reports whether c's major format version matches the
// one this build writes and expects, narrowed from the teacher's own
// semver-compatibility check down to the single major-version comparison
// the codec format actually needs (spec.md §6.2: "major version bump ...
// signals an incompatible change").
func checkCodecVersion(c Codec) error {
	got := codec.MajorVersion(c.SchemaURI)
	want := codec.MajorVersion(codec.SchemaURI)
	if got != want {
		return schemaerr.New(CodecVersionMismatch, "#",
			"codec major version %d is incompatible with this build's %d", got, want)
	}
	return nil
}
