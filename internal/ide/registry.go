// Package ide routes filtered artifact sets to integration targets (IDE and
// assistant tool integrations). The dispatcher collects each target's
// artifact set from discovery, drops tasks superseded by native skills, and
// hands the survivors to the target's setup function.
package ide

import "sort"

// TargetName identifies a supported integration target.
type TargetName string

const (
	ClaudeCode TargetName = "claude-code"
	Cursor     TargetName = "cursor"
	Windsurf   TargetName = "windsurf"
	Copilot    TargetName = "copilot"
)

// Target describes one integration target: where its command artifacts live
// relative to the project root, and the setup function that receives the
// filtered artifact set.
type Target struct {
	Name        TargetName
	CommandsDir string
	Setup       SetupFunc
}

// targetRegistry maps each supported target to its configuration. Every
// entry uses the default copy-into-commands-dir setup; callers may swap the
// Setup function on the returned value before dispatching.
var targetRegistry = map[TargetName]Target{
	ClaudeCode: {Name: ClaudeCode, CommandsDir: ".claude/commands/bmad"},
	Cursor:     {Name: Cursor, CommandsDir: ".cursor/commands/bmad"},
	Windsurf:   {Name: Windsurf, CommandsDir: ".windsurf/workflows/bmad"},
	Copilot:    {Name: Copilot, CommandsDir: ".github/prompts/bmad"},
}

// Setup is assigned in init rather than in the map literal above to avoid an
// initialization cycle (targetRegistry -> defaultSetup -> Lookup ->
// targetRegistry).
func init() {
	for name, t := range targetRegistry {
		t.Setup = defaultSetup
		targetRegistry[name] = t
	}
}

// AllTargets returns every supported target name, sorted.
func AllTargets() []TargetName {
	names := make([]TargetName, 0, len(targetRegistry))
	for name := range targetRegistry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ParseTargetName converts a string to a TargetName, returning false if the
// target is unknown.
func ParseTargetName(s string) (TargetName, bool) {
	if _, ok := targetRegistry[TargetName(s)]; !ok {
		return "", false
	}
	return TargetName(s), true
}

// Lookup returns the registered configuration for a target.
func Lookup(name TargetName) (Target, bool) {
	t, ok := targetRegistry[name]
	return t, ok
}
