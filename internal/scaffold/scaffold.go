// Package scaffold generates stub component sources inside an installed
// root: a base definition for agents, or a descriptor file for skills,
// tasks, and workflows, ready to edit and install.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/platform"
	"github.com/bmad-labs/bmad/internal/workspace"
)

// Data holds the template variables available to scaffold templates.
type Data struct {
	ID          string // e.g., "shard-doc"
	Name        string // display name, derived from ID when empty
	Module      string // owning module, e.g., "core"
	Description string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Files []string
}

const agentTemplate = `agent:
  metadata:
    id: {{.ID}}
    name: {{.Name}}
    title: {{.Name}}
    module: {{.Module}}
  persona:
    role: ""
    identity: ""
  menu:
    - trigger: help
      description: Show available commands
`

const skillTemplate = `---
name: {{.ID}}
description: {{.Description}}
standalone: true
---

# {{.Name}}

Describe the skill here.
`

const taskTemplate = `---
name: {{.ID}}
description: {{.Description}}
---

# {{.Name}}

Describe the task steps here.
`

const workflowTemplate = `name: {{.ID}}
description: {{.Description}}
steps: []
`

// kindFiles maps each kind to its stub file path inside the module dir.
var kindFiles = map[definition.Kind]struct {
	relPath string // template for the output path, {id} substituted
	body    string
}{
	definition.KindAgent:    {workspace.AgentsDir + "/{id}.agent.yaml", agentTemplate},
	definition.KindSkill:    {workspace.SkillsDir + "/{id}/SKILL.md", skillTemplate},
	definition.KindTask:     {workspace.TasksDir + "/{id}.md", taskTemplate},
	definition.KindWorkflow: {workspace.WorkflowsDir + "/{id}/workflow.yaml", workflowTemplate},
}

// New derives a Data with defaults filled in.
func New(kind definition.Kind, module, id string) *Data {
	name := strings.ReplaceAll(id, "-", " ")
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return &Data{
		ID:          id,
		Name:        name,
		Module:      module,
		Description: fmt.Sprintf("New %s %s", kind, id),
	}
}

// Generate writes the stub files for one component. It refuses to overwrite
// an existing component.
func Generate(installedRoot string, kind definition.Kind, data *Data) (*Result, error) {
	spec, ok := kindFiles[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	if data.ID == "" {
		return nil, fmt.Errorf("component id is required")
	}

	rel := strings.ReplaceAll(spec.relPath, "{id}", data.ID)
	path := filepath.Join(workspace.ModuleDir(installedRoot, data.Module), filepath.FromSlash(rel))

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%s already exists", path)
	}

	tmpl, err := template.New(string(kind)).Parse(spec.body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", kind, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("rendering %s template: %w", kind, err)
	}

	if err := platform.WriteFileAtomic(path, []byte(b.String()), 0644); err != nil {
		return nil, err
	}
	return &Result{Files: []string{path}}, nil
}
