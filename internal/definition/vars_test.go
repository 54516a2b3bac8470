package definition

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveString(t *testing.T) {
	vars := map[string]string{
		"project-root": "/work/app",
		"user_name":    "Sam",
	}

	tests := []struct {
		in   string
		want string
	}{
		{"{project-root}/docs", "/work/app/docs"},
		{"Hello {user_name}!", "Hello Sam!"},
		{"{unknown} stays", "{unknown} stays"},
		{"no placeholders", "no placeholders"},
		{"{project-root}/{user_name}", "/work/app/Sam"},
		{"literal {not a var} braces", "literal {not a var} braces"},
	}

	for _, tt := range tests {
		if got := ResolveString(tt.in, vars); got != tt.want {
			t.Errorf("ResolveString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveWalksNestedTrees(t *testing.T) {
	tree := map[string]any{
		"persona": map[string]any{
			"identity": "Assistant for {user_name}",
		},
		"menu": []any{
			map[string]any{
				"trigger":  "shard",
				"workflow": "{installed-root}/workflows/shard",
			},
		},
		"count": 3,
	}

	got := Resolve(tree, map[string]string{
		"user_name":      "Sam",
		"installed-root": "/work/app/_bmad",
	})

	want := map[string]any{
		"persona": map[string]any{
			"identity": "Assistant for Sam",
		},
		"menu": []any{
			map[string]any{
				"trigger":  "shard",
				"workflow": "/work/app/_bmad/workflows/shard",
			},
		},
		"count": 3,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}

	// The input tree must be untouched.
	if tree["persona"].(map[string]any)["identity"] != "Assistant for {user_name}" {
		t.Error("Resolve mutated its input")
	}
}

func TestResolveLeavesUnresolvedVerbatim(t *testing.T) {
	tree := map[string]any{"path": "{output_folder}/report.md"}

	got := Resolve(tree, map[string]string{})

	if got["path"] != "{output_folder}/report.md" {
		t.Errorf("path = %v, want unresolved placeholder kept verbatim", got["path"])
	}
}
