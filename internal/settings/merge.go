package settings

// MergeRaw overlays admin edits onto the existing persisted blob and returns
// a new map. Top-level keys from edits replace their counterparts; every
// other key of the existing blob survives untouched, including keys this app
// version does not recognize. Neither input is mutated.
func MergeRaw(existing, edits map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(edits))
	for k, v := range existing {
		merged[k] = copyValue(v)
	}
	for k, v := range edits {
		merged[k] = copyValue(v)
	}
	return merged
}

// copyValue deep-copies the JSON-shaped value so callers holding the inputs
// never alias the merged result.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = copyValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = copyValue(inner)
		}
		return out
	default:
		return val
	}
}
