package discovery

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/workspace"
)

// Component is one discovered installed component. Records are produced
// fresh on every pass and never mutated.
type Component struct {
	ID          string // stable short name derived from the path
	Name        string // display name from metadata, falling back to ID
	Description string
	Kind        definition.Kind
	Module      string
	RelPath     string // slash-separated, relative to the installed root
	Standalone  bool
}

// WarnFunc receives non-fatal scan problems (unreadable entries, bad
// frontmatter). The CLI points this at stderr.
type WarnFunc func(format string, args ...any)

// kindLayouts describes where each kind lives inside a module directory and
// which descriptor marks a valid component.
var kindLayouts = []struct {
	kind       definition.Kind
	dir        string
	descriptor string // per-directory descriptor; "" means plain files
	ext        string
}{
	{definition.KindAgent, workspace.AgentsDir, "", ".md"},
	{definition.KindSkill, workspace.SkillsDir, "SKILL.md", ""},
	{definition.KindTask, workspace.TasksDir, "", ".md"},
	{definition.KindWorkflow, workspace.WorkflowsDir, "workflow.yaml", ""},
}

// Discover walks the installed root and returns every valid component,
// ordered lexicographically by relative path. A missing installed root is an
// empty result, not an error.
func Discover(installedRoot string, warn WarnFunc) []Component {
	var components []Component
	for c := range All(installedRoot, warn) {
		components = append(components, c)
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i].RelPath < components[j].RelPath
	})
	return components
}

// All returns a lazy, restartable sequence over the installed root. Each
// range restarts the walk from disk, so the sequence always reflects current
// filesystem state. Traversal order within a module is lexicographic;
// Discover sorts globally.
func All(installedRoot string, warn WarnFunc) iter.Seq[Component] {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return func(yield func(Component) bool) {
		modules, err := moduleDirs(installedRoot)
		if err != nil {
			warn("reading installed root %s: %v", installedRoot, err)
			return
		}
		for _, module := range modules {
			for _, layout := range kindLayouts {
				if !walkKind(installedRoot, module, layout.kind, layout.dir, layout.descriptor, layout.ext, warn, yield) {
					return
				}
			}
		}
	}
}

// moduleDirs lists module directories in the installed root, skipping the
// _cfg directory and hidden entries.
func moduleDirs(installedRoot string) ([]string, error) {
	entries, err := os.ReadDir(installedRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var modules []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || name == workspace.CfgDir || strings.HasPrefix(name, ".") {
			continue
		}
		modules = append(modules, name)
	}
	return modules, nil
}

// walkKind scans one kind directory of one module. Returns false when the
// consumer stopped the sequence.
func walkKind(installedRoot, module string, kind definition.Kind, dir, descriptor, ext string, warn WarnFunc, yield func(Component) bool) bool {
	root := filepath.Join(installedRoot, module, dir)
	if _, err := os.Stat(root); err != nil {
		return true // kind dir absent; nothing installed
	}

	ok := true
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warn("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if descriptor != "" {
			if name != descriptor {
				return nil
			}
		} else if filepath.Ext(name) != ext {
			return nil
		}

		rel, relErr := filepath.Rel(installedRoot, path)
		if relErr != nil {
			warn("skipping %s: %v", path, relErr)
			return nil
		}
		rel = filepath.ToSlash(rel)

		c, loadErr := loadComponent(path, rel, kind, module, descriptor)
		if loadErr != nil {
			warn("skipping %s: %v", rel, loadErr)
			return nil
		}

		if !yield(c) {
			ok = false
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		warn("scanning %s: %v", root, walkErr)
	}
	return ok
}

// loadComponent reads a component's metadata from its descriptor.
func loadComponent(path, rel string, kind definition.Kind, module, descriptor string) (Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Component{}, err
	}

	id := derivedName(rel, descriptor)
	c := Component{
		ID:      id,
		Kind:    kind,
		Module:  module,
		RelPath: rel,
		Name:    id,
	}

	if strings.HasSuffix(path, ".md") {
		fm, err := ParseFrontmatter(data)
		if err != nil {
			return Component{}, err
		}
		if fm.Name != "" {
			c.Name = fm.Name
		}
		c.Description = fm.Description
		c.Standalone = fm.Standalone
		return c, nil
	}

	// YAML descriptor (workflows).
	var meta struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Standalone  bool   `yaml:"standalone"`
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Component{}, err
	}
	if meta.Name != "" {
		c.Name = meta.Name
	}
	c.Description = meta.Description
	c.Standalone = meta.Standalone
	return c, nil
}

// derivedName is the fallback display name from the path: the descriptor's
// directory name, or the file stem for plain artifacts.
func derivedName(rel, descriptor string) string {
	base := filepath.Base(rel)
	if descriptor != "" {
		return filepath.Base(filepath.Dir(rel))
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
