package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
	t.Setenv("BMAD_PROJECT", root)
	return root
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestStatusBeforeInstall(t *testing.T) {
	writeProject(t, map[string]string{"bmad.yaml": "user_name: Sam\n"})

	out, err := runCommand(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Not installed yet") {
		t.Errorf("output = %q, want fresh-project notice", out)
	}
}

func TestInstallThenStatus(t *testing.T) {
	root := writeProject(t, map[string]string{
		"bmad.yaml": "user_name: Sam\n",
		"_bmad/core/agents/dev.agent.yaml": "agent:\n  metadata:\n    id: dev\n    name: Developer\n    module: core\n",
		"_bmad/core/tasks/help.md":         "---\nname: help\ndescription: Show help\n---\nbody\n",
	})

	out, err := runCommand(t, "install", "--module", "core")
	if err != nil {
		t.Fatalf("install: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓ agent dev") {
		t.Errorf("install output missing compiled agent:\n%s", out)
	}

	if _, err := os.Stat(filepath.Join(root, "_bmad", "_cfg", "agent-manifest.csv")); err != nil {
		t.Errorf("agent manifest not written: %v", err)
	}

	out, err = runCommand(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Modules:   core") {
		t.Errorf("status output missing modules:\n%s", out)
	}
}

func TestCreateScaffoldsComponent(t *testing.T) {
	root := writeProject(t, map[string]string{"bmad.yaml": "user_name: Sam\n"})

	out, err := runCommand(t, "create", "task", "index-docs", "--module", "core")
	if err != nil {
		t.Fatalf("create: %v\n%s", err, out)
	}

	if _, err := os.Stat(filepath.Join(root, "_bmad", "core", "tasks", "index-docs.md")); err != nil {
		t.Errorf("scaffolded task missing: %v", err)
	}
}

func TestCompileCommand(t *testing.T) {
	root := writeProject(t, map[string]string{
		"bmad.yaml":      "user_name: Sam\n",
		"dev.agent.yaml": "agent:\n  metadata:\n    id: dev\n    name: Developer\n",
	})

	defPath := filepath.Join(root, "dev.agent.yaml")
	outPath := filepath.Join(root, "dev.md")
	if _, err := runCommand(t, "compile", defPath, "-o", outPath); err != nil {
		t.Fatalf("compile: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("compiled artifact missing: %v", err)
	}
	if !strings.Contains(string(data), `<agent id="dev"`) {
		t.Errorf("artifact malformed:\n%s", data)
	}
}
