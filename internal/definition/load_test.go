package definition

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const validAgent = `agent:
  metadata:
    id: dev
    name: Developer
    title: Senior Developer
    module: core
  persona:
    role: engineer
  menu:
    - trigger: help
      description: Show available commands
`

func TestLoadValidAgent(t *testing.T) {
	path := writeFixture(t, "agent.yaml", validAgent)

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if def.Kind != KindAgent {
		t.Errorf("Kind = %q, want %q", def.Kind, KindAgent)
	}
	if def.ID() != "dev" {
		t.Errorf("ID = %q, want %q", def.ID(), "dev")
	}
	if def.Title() != "Senior Developer" {
		t.Errorf("Title = %q, want %q", def.Title(), "Senior Developer")
	}
	if def.Module() != "core" {
		t.Errorf("Module = %q, want %q", def.Module(), "core")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrDefinitionLoad) {
		t.Errorf("err = %v, want ErrDefinitionLoad", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeFixture(t, "bad.yaml", "agent: [unclosed")

	_, err := Load(path)
	if !errors.Is(err, ErrDefinitionLoad) {
		t.Errorf("err = %v, want ErrDefinitionLoad", err)
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	path := writeFixture(t, "odd.yaml", "gizmo:\n  metadata: {id: x, name: X}\n")

	_, err := Load(path)
	if !errors.Is(err, ErrDefinitionLoad) {
		t.Errorf("err = %v, want ErrDefinitionLoad", err)
	}
}

func TestLoadRejectsMissingMetadata(t *testing.T) {
	path := writeFixture(t, "nometa.yaml", "agent:\n  persona:\n    role: engineer\n")

	_, err := Load(path)
	if !errors.Is(err, ErrDefinitionLoad) {
		t.Errorf("err = %v, want ErrDefinitionLoad (schema requires metadata)", err)
	}
}

func TestLoadOverlayUnwrapsKindKey(t *testing.T) {
	path := writeFixture(t, "custom.yaml", "agent:\n  persona:\n    role: reviewer\n")

	tree, err := LoadOverlay(path, KindAgent)
	if err != nil {
		t.Fatalf("LoadOverlay: %v", err)
	}

	persona, ok := tree["persona"].(map[string]any)
	if !ok || persona["role"] != "reviewer" {
		t.Errorf("tree = %v, want unwrapped persona.role=reviewer", tree)
	}
}

func TestLoadOverlayBareTree(t *testing.T) {
	path := writeFixture(t, "custom.yaml", "persona:\n  role: reviewer\n")

	tree, err := LoadOverlay(path, KindAgent)
	if err != nil {
		t.Fatalf("LoadOverlay: %v", err)
	}
	if _, ok := tree["persona"]; !ok {
		t.Errorf("tree = %v, want persona key", tree)
	}
}

func TestLoadOverlayMissingFile(t *testing.T) {
	_, err := LoadOverlay(filepath.Join(t.TempDir(), "absent.yaml"), KindAgent)
	if !errors.Is(err, ErrOverlayLoad) {
		t.Errorf("err = %v, want ErrOverlayLoad", err)
	}
}
