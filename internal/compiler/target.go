package compiler

// Per-target keyword allow-lists for Pass 7's pruning sub-phase (spec §4.9).
// Modeled the way schemaprofile.go models its own single fixed profile
// allow-list (inScopeKeywords/annotationKeywords package-level maps,
// asserted against via assertProfileKeywords) — generalized from one set to
// three, and inverted from "reject on violation" to "drop and record".
//
// Keywords never listed here (properties, required, type, items,
// prefixItems, additionalProperties, enum, const, description, title) are
// structural/always-kept and are not subject to Pass 7 pruning at all.

var openAIDropped = stringKeySet(
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minLength", "maxLength", "minItems", "maxItems", "uniqueItems",
	"format", "default", "not", "if", "then", "else",
	"dependentRequired", "dependentSchemas",
	"unevaluatedProperties", "unevaluatedItems",
	"contains", "minContains", "maxContains",
)

var geminiDropped = stringKeySet(
	"not", "if", "then", "else", "multipleOf", "format",
)

var claudeDropped = stringKeySet(
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minLength", "maxLength", "minItems", "maxItems", "uniqueItems",
	"format", "default", "not", "if", "then", "else",
	"dependentRequired", "dependentSchemas",
	"unevaluatedProperties", "unevaluatedItems",
	"contains", "minContains", "maxContains",
	"pattern",
)

func stringKeySet(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

// droppedKeywordsFor returns the keyword drop-set for a target.
func droppedKeywordsFor(target Target) map[string]struct{} {
	switch target {
	case TargetGemini:
		return geminiDropped
	case TargetClaude:
		return claudeDropped
	default:
		return openAIDropped
	}
}

// acceptsConst reports whether target preserves the const keyword as-is
// (only Gemini does; OpenAI and Claude require const → enum, spec §4.9).
func acceptsConst(target Target) bool {
	return target == TargetGemini
}

// skipsDictionaryTranspilation reports whether Pass 3 is a no-op for target
// (Gemini has native map/dictionary support, spec §4.5).
func skipsDictionaryTranspilation(target Target) bool {
	return target == TargetGemini
}

// skipsRecursionBreaking reports whether Pass 5 is a no-op for target
// (spec §4.7: "Skipped entirely for Gemini").
func skipsRecursionBreaking(target Target) bool {
	return target == TargetGemini
}

// appliesStrictEnforcement reports whether Pass 6 runs for target. OpenAI
// and Claude in strict mode only — permissive mode skips it for every
// target; Gemini never (spec §4.8).
func appliesStrictEnforcement(target Target, mode Mode) bool {
	if target == TargetGemini {
		return false
	}
	if mode == ModePermissive {
		return false
	}
	return true
}
