package artifact

// FilterTasks drops every task artifact whose command name collides with a
// native skill's command name, preserving the order of the survivors. A
// native skill is the single source of truth for its command; an equivalent
// legacy task never reaches an integration target alongside it.
func FilterTasks(taskPaths, skillPaths []string) []string {
	if len(taskPaths) == 0 || len(skillPaths) == 0 {
		return taskPaths
	}

	skillNames := make(map[string]bool, len(skillPaths))
	for _, p := range skillPaths {
		skillNames[CommandName(p)] = true
	}

	kept := make([]string, 0, len(taskPaths))
	for _, p := range taskPaths {
		if skillNames[CommandName(p)] {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
