package definition

import (
	"regexp"
	"strings"
)

// placeholderPattern matches {name} tokens. Names are word characters plus
// dash and dot, so literal braces in prose (e.g., code samples) pass through.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)

// Resolve substitutes {placeholder} tokens throughout a tree using the given
// resolution table and returns a new tree. Placeholders with no table entry
// are left verbatim so downstream consumers can resolve runtime-only
// variables. Only string scalars are rewritten.
func Resolve(tree map[string]any, vars map[string]string) map[string]any {
	out, _ := resolveNode(tree, vars).(map[string]any)
	return out
}

// ResolveString substitutes {placeholder} tokens in a single string.
func ResolveString(s string, vars map[string]string) string {
	if !strings.Contains(s, "{") {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})
}

func resolveNode(v any, vars map[string]string) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = resolveNode(child, vars)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = resolveNode(child, vars)
		}
		return out
	case string:
		return ResolveString(node, vars)
	default:
		return v
	}
}
