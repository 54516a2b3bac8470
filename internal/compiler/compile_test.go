package compiler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmad-labs/bmad/internal/definition"
)

const devAgent = `agent:
  metadata:
    id: dev
    name: Developer
    title: Senior Developer
    module: core
  persona:
    role: engineer
    identity: Pragmatic implementer for {user_name}
  menu:
    - trigger: help
      description: Show available commands
    - trigger: shard
      workflow: "{installed-root}/workflows/shard"
      description: Split a document
`

func writeAgent(t *testing.T, content string) (defPath string, dir string) {
	t.Helper()
	dir = t.TempDir()
	defPath = filepath.Join(dir, "dev.agent.yaml")
	if err := os.WriteFile(defPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing definition: %v", err)
	}
	return defPath, dir
}

func TestCompileProducesTaggedArtifact(t *testing.T) {
	defPath, dir := writeAgent(t, devAgent)
	outPath := filepath.Join(dir, "out", "dev.md")

	res, err := Compile(defPath, "", outPath, Options{
		Variables: map[string]string{
			"user_name":      "Sam",
			"installed-root": "/proj/_bmad",
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.OutputPath != outPath {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, outPath)
	}
	if res.ID != "dev" || res.Module != "core" {
		t.Errorf("result = %+v, want id dev module core", res)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"---\nname: Developer\n",
		`<agent id="dev" name="Developer" title="Senior Developer">`,
		"<persona>",
		"<identity>Pragmatic implementer for Sam</identity>",
		`<item trigger="help">Show available commands</item>`,
		`<item trigger="shard" workflow="/proj/_bmad/workflows/shard">Split a document</item>`,
		"</agent>",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("artifact missing %q\n---\n%s", want, text)
		}
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	defPath, dir := writeAgent(t, devAgent)
	opts := Options{Variables: map[string]string{"user_name": "Sam"}}

	out1 := filepath.Join(dir, "a.md")
	out2 := filepath.Join(dir, "b.md")
	if _, err := Compile(defPath, "", out1, opts); err != nil {
		t.Fatalf("first Compile: %v", err)
	}
	if _, err := Compile(defPath, "", out2, opts); err != nil {
		t.Fatalf("second Compile: %v", err)
	}

	a, _ := os.ReadFile(out1)
	b, _ := os.ReadFile(out2)
	if !bytes.Equal(a, b) {
		t.Error("compiling the same definition twice produced different bytes")
	}
}

func TestCompileAppliesOverlay(t *testing.T) {
	defPath, dir := writeAgent(t, devAgent)
	overlayPath := filepath.Join(dir, "dev.customize.yaml")
	overlay := "agent:\n  persona:\n    role: reviewer\n"
	if err := os.WriteFile(overlayPath, []byte(overlay), 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}
	outPath := filepath.Join(dir, "dev.md")

	if _, err := Compile(defPath, overlayPath, outPath, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	data, _ := os.ReadFile(outPath)
	if !strings.Contains(string(data), "<role>reviewer</role>") {
		t.Errorf("overlay role not applied:\n%s", data)
	}
	// Base keys absent from the overlay survive.
	if !strings.Contains(string(data), "<identity>") {
		t.Errorf("base identity lost during merge:\n%s", data)
	}
}

func TestCompileMissingNamedOverlayFails(t *testing.T) {
	defPath, dir := writeAgent(t, devAgent)

	_, err := Compile(defPath, filepath.Join(dir, "absent.yaml"), filepath.Join(dir, "dev.md"), Options{})
	if !errors.Is(err, definition.ErrOverlayLoad) {
		t.Errorf("err = %v, want ErrOverlayLoad", err)
	}
}

func TestCompileEmitsRequiredSections(t *testing.T) {
	minimal := "agent:\n  metadata:\n    id: bare\n    name: Bare\n"
	defPath, dir := writeAgent(t, minimal)
	outPath := filepath.Join(dir, "bare.md")

	if _, err := Compile(defPath, "", outPath, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	data, _ := os.ReadFile(outPath)
	text := string(data)
	if !strings.Contains(text, "<persona></persona>") {
		t.Errorf("empty persona section missing:\n%s", text)
	}
	if !strings.Contains(text, "<menu></menu>") {
		t.Errorf("empty menu section missing:\n%s", text)
	}
}

func TestCompileFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	defPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(defPath, []byte("agent: [not a mapping]"), 0644); err != nil {
		t.Fatalf("writing definition: %v", err)
	}
	outPath := filepath.Join(dir, "bad.md")

	_, err := Compile(defPath, "", outPath, Options{})
	if !errors.Is(err, definition.ErrDefinitionLoad) {
		t.Fatalf("err = %v, want ErrDefinitionLoad", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("failed compile left an output file behind")
	}
}

func TestCompileLeavesUnresolvedPlaceholders(t *testing.T) {
	defPath, dir := writeAgent(t, devAgent)
	outPath := filepath.Join(dir, "dev.md")

	if _, err := Compile(defPath, "", outPath, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	data, _ := os.ReadFile(outPath)
	if !strings.Contains(string(data), "{user_name}") {
		t.Errorf("unresolved placeholder was not kept verbatim:\n%s", data)
	}
}
