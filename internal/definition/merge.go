package definition

// Merge deep-merges an overlay tree onto a base tree and returns a new tree;
// neither input is mutated. Behavior is defined per node variant:
//
//   - Mapping:  merged key-by-key; keys only in the base are preserved, keys
//     only in the overlay are added, keys in both recurse.
//   - Sequence: the overlay value replaces the base value wholesale.
//   - Scalar:   the overlay value replaces the base value wholesale.
//
// A nil overlay returns a copy of the base. Sibling-key order is irrelevant
// (map semantics), so the merge is order-independent and associative.
func Merge(base, overlay map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = copyTree(v)
	}
	for k, v := range overlay {
		baseMap, baseOK := merged[k].(map[string]any)
		overMap, overOK := v.(map[string]any)
		if baseOK && overOK {
			merged[k] = Merge(baseMap, overMap)
			continue
		}
		merged[k] = copyTree(v)
	}
	return merged
}

// copyTree returns a deep copy of a decoded YAML value so merged trees never
// alias the immutable loaded definition.
func copyTree(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = copyTree(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = copyTree(child)
		}
		return out
	default:
		return v
	}
}
