package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestMergeDeduplicatesByCommandName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "core", "help.csv"),
		"module,name,trigger,description\n"+
			"core,bmad-shard-doc,shard,Split a document\n"+
			"core,bmad-help,help,Show help\n")
	writeFile(t, filepath.Join(root, "bmm", "help.csv"),
		"module,name,trigger,description\n"+
			"bmm,bmad-shard-doc,shard,Split a document (bmm copy)\n"+
			"bmm,bmad-plan,plan,Plan a project\n")

	res, err := Merge(root, []string{"core", "bmm"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if res.Rows != 3 {
		t.Errorf("Rows = %d, want 3", res.Rows)
	}
	if res.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", res.Duplicates)
	}

	data, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatalf("reading merged catalog: %v", err)
	}
	text := string(data)

	if strings.Count(text, "bmad-shard-doc") != 1 {
		t.Errorf("bmad-shard-doc appears %d times, want 1:\n%s", strings.Count(text, "bmad-shard-doc"), text)
	}
	// First contributor wins.
	if strings.Contains(text, "bmm copy") {
		t.Errorf("later module's duplicate row won:\n%s", text)
	}
	if !strings.Contains(text, "bmad-plan") {
		t.Errorf("unique row from second module missing:\n%s", text)
	}
	if !strings.HasPrefix(text, "module,name,trigger,description\n") {
		t.Errorf("merged catalog missing header:\n%s", text)
	}
}

func TestMergeModuleWithoutPartial(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "core", "help.csv"),
		"module,name,trigger,description\ncore,bmad-help,help,Show help\n")

	res, err := Merge(root, []string{"core", "bare"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if res.Rows != 1 {
		t.Errorf("Rows = %d, want 1", res.Rows)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "core", "help.csv"),
		"module,name,trigger,description\ncore,bmad-help,help,Show help\n")

	res1, err := Merge(root, []string{"core"})
	if err != nil {
		t.Fatalf("first Merge: %v", err)
	}
	first, _ := os.ReadFile(res1.OutputPath)

	res2, err := Merge(root, []string{"core"})
	if err != nil {
		t.Fatalf("second Merge: %v", err)
	}
	second, _ := os.ReadFile(res2.OutputPath)

	if string(first) != string(second) {
		t.Error("repeated merge produced different bytes")
	}
}
