package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmad-labs/bmad/internal/definition"
)

// agentSectionOrder fixes the leading section order for agent artifacts.
// Sections not listed here follow in lexicographic order, so rendering is
// deterministic regardless of map iteration.
var agentSectionOrder = []string{"persona", "critical_actions", "menu"}

// requiredAgentSections are emitted even when the definition leaves them out.
var requiredAgentSections = []string{"persona", "menu"}

// Render produces the compiled artifact text for a merged, resolved tree.
// The document carries YAML frontmatter (discovery metadata) followed by a
// root tag named after the kind; agents always contain persona and menu
// sections, empty or not.
func Render(kind definition.Kind, tree map[string]any) []byte {
	var b strings.Builder

	writeFrontmatter(&b, kind, tree)

	b.WriteString("<" + string(kind) + rootAttrs(tree) + ">\n")
	for _, key := range sectionKeys(kind, tree) {
		writeNode(&b, key, tree[key], 1)
	}
	b.WriteString("</" + string(kind) + ">\n")

	return []byte(b.String())
}

// writeFrontmatter emits the YAML metadata block discovery reads back.
func writeFrontmatter(b *strings.Builder, kind definition.Kind, tree map[string]any) {
	meta, _ := tree["metadata"].(map[string]any)

	name, _ := meta["name"].(string)
	desc, _ := meta["description"].(string)
	if desc == "" {
		desc, _ = meta["title"].(string)
	}
	standalone := kind == definition.KindAgent
	if v, ok := meta["standalone"].(bool); ok {
		standalone = v
	}

	b.WriteString("---\n")
	fmt.Fprintf(b, "name: %s\n", quoteIfNeeded(name))
	fmt.Fprintf(b, "description: %s\n", quoteIfNeeded(desc))
	fmt.Fprintf(b, "standalone: %t\n", standalone)
	b.WriteString("---\n")
}

// rootAttrs renders metadata identity fields as attributes on the root tag.
func rootAttrs(tree map[string]any) string {
	meta, _ := tree["metadata"].(map[string]any)
	var b strings.Builder
	for _, key := range []string{"id", "name", "title", "icon"} {
		if s, _ := meta[key].(string); s != "" {
			fmt.Fprintf(&b, " %s=%q", key, s)
		}
	}
	return b.String()
}

// sectionKeys returns the top-level keys to render, in deterministic order,
// injecting the structural sections the kind guarantees.
func sectionKeys(kind definition.Kind, tree map[string]any) []string {
	seen := map[string]bool{"metadata": true}
	var keys []string

	if kind == definition.KindAgent {
		for _, key := range agentSectionOrder {
			if _, ok := tree[key]; ok {
				keys = append(keys, key)
				seen[key] = true
			}
		}
		for _, key := range requiredAgentSections {
			if !seen[key] {
				keys = insertOrdered(keys, key)
				seen[key] = true
			}
		}
	}

	var rest []string
	for key := range tree {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// insertOrdered places a required section at its canonical position among
// the already selected keys.
func insertOrdered(keys []string, key string) []string {
	rank := map[string]int{}
	for i, s := range agentSectionOrder {
		rank[s] = i
	}
	out := make([]string, 0, len(keys)+1)
	inserted := false
	for _, k := range keys {
		if !inserted && rank[key] < rank[k] {
			out = append(out, key)
			inserted = true
		}
		out = append(out, k)
	}
	if !inserted {
		out = append(out, key)
	}
	return out
}

// writeNode renders one attribute-tree node as a tagged section.
func writeNode(b *strings.Builder, key string, v any, depth int) {
	indent := strings.Repeat("  ", depth)
	tag := strings.ReplaceAll(key, "_", "-")

	switch node := v.(type) {
	case nil:
		// A structurally required section absent from the definition.
		b.WriteString(indent + "<" + tag + "></" + tag + ">\n")
	case map[string]any:
		if len(node) == 0 {
			b.WriteString(indent + "<" + tag + "></" + tag + ">\n")
			return
		}
		b.WriteString(indent + "<" + tag + ">\n")
		for _, childKey := range sortedKeys(node) {
			writeNode(b, childKey, node[childKey], depth+1)
		}
		b.WriteString(indent + "</" + tag + ">\n")
	case []any:
		if len(node) == 0 {
			b.WriteString(indent + "<" + tag + "></" + tag + ">\n")
			return
		}
		b.WriteString(indent + "<" + tag + ">\n")
		for _, elem := range node {
			writeListItem(b, elem, depth+1)
		}
		b.WriteString(indent + "</" + tag + ">\n")
	default:
		fmt.Fprintf(b, "%s<%s>%v</%s>\n", indent, tag, node, tag)
	}
}

// writeListItem renders one sequence element. Map elements become <item>
// tags with their scalar fields as attributes and any "description" field as
// the tag content; scalar elements become dash lines.
func writeListItem(b *strings.Builder, elem any, depth int) {
	indent := strings.Repeat("  ", depth)

	m, ok := elem.(map[string]any)
	if !ok {
		fmt.Fprintf(b, "%s- %v\n", indent, elem)
		return
	}

	var attrs strings.Builder
	for _, key := range itemAttrKeys(m) {
		fmt.Fprintf(&attrs, " %s=%q", strings.ReplaceAll(key, "_", "-"), fmt.Sprint(m[key]))
	}
	desc, _ := m["description"].(string)
	fmt.Fprintf(b, "%s<item%s>%s</item>\n", indent, attrs.String(), desc)
}

// itemAttrKeys orders item attributes: trigger first, the rest lexicographic,
// description excluded (it is the content).
func itemAttrKeys(m map[string]any) []string {
	var keys []string
	for key := range m {
		if key == "description" || key == "trigger" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if _, ok := m["trigger"]; ok {
		keys = append([]string{"trigger"}, keys...)
	}
	return keys
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// quoteIfNeeded wraps a frontmatter scalar in quotes when YAML would
// otherwise misread it.
func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, ":#{}[]&*!|>'\"%@`") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
