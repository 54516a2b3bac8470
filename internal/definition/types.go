package definition

// Kind identifies the component type a definition describes.
type Kind string

const (
	KindAgent    Kind = "agent"
	KindTask     Kind = "task"
	KindSkill    Kind = "skill"
	KindWorkflow Kind = "workflow"
)

// AllKinds returns every component kind in manifest order.
func AllKinds() []Kind {
	return []Kind{KindAgent, KindSkill, KindTask, KindWorkflow}
}

// ParseKind converts a string to a Kind, returning false if invalid.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "agent":
		return KindAgent, true
	case "task":
		return KindTask, true
	case "skill":
		return KindSkill, true
	case "workflow":
		return KindWorkflow, true
	default:
		return "", false
	}
}

// Definition is a loaded base component definition. The attribute tree is the
// content under the kind's root key, decoded into plain maps, slices, and
// scalars. Definitions are immutable once loaded; Merge and Resolve return
// new trees rather than mutating.
type Definition struct {
	Kind Kind
	Path string
	Tree map[string]any
}

// ID returns the component identifier from metadata.id, or "" if absent.
func (d *Definition) ID() string {
	return metadataString(d.Tree, "id")
}

// Name returns the component name from metadata.name, or "" if absent.
func (d *Definition) Name() string {
	return metadataString(d.Tree, "name")
}

// Title returns the display title from metadata.title, falling back to the
// component name.
func (d *Definition) Title() string {
	if t := metadataString(d.Tree, "title"); t != "" {
		return t
	}
	return d.Name()
}

// Module returns the owning module identifier from metadata.module, or "".
func (d *Definition) Module() string {
	return metadataString(d.Tree, "module")
}

func metadataString(tree map[string]any, key string) string {
	meta, ok := tree["metadata"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := meta[key].(string)
	return s
}
