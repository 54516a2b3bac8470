package ide

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmad-labs/bmad/internal/artifact"
	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/discovery"
	"github.com/bmad-labs/bmad/internal/platform"
)

// SetupInput is the contract handed to a target's setup function.
type SetupInput struct {
	Target          TargetName
	ProjectRoot     string
	InstalledRoot   string
	SelectedModules []string
	// Artifacts are installed-root-relative paths, already deduplicated:
	// no task appears whose command name a native skill owns.
	Artifacts []string
}

// SetupResult reports what a target's setup produced.
type SetupResult struct {
	Target   TargetName
	Created  []string
	Warnings []string
}

// SetupFunc installs a filtered artifact set for one target.
type SetupFunc func(SetupInput) (*SetupResult, error)

// Dispatch collects the artifact set for each requested target, filters out
// superseded tasks, and invokes the target's setup. A target failing does
// not stop the remaining targets; per-target errors surface as warnings in
// the returned results.
func Dispatch(targets []TargetName, projectRoot, installedRoot string, modules []string, warn discovery.WarnFunc) ([]SetupResult, error) {
	components := discovery.Discover(installedRoot, warn)
	artifacts := collectArtifacts(components)

	var results []SetupResult
	for _, name := range targets {
		target, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown integration target: %s", name)
		}

		res, err := target.Setup(SetupInput{
			Target:          name,
			ProjectRoot:     projectRoot,
			InstalledRoot:   installedRoot,
			SelectedModules: modules,
			Artifacts:       artifacts,
		})
		if err != nil {
			results = append(results, SetupResult{
				Target:   name,
				Warnings: []string{fmt.Sprintf("setup failed: %v", err)},
			})
			continue
		}
		res.Target = name
		results = append(results, *res)
	}
	return results, nil
}

// collectArtifacts builds the deduplicated artifact path set: agents,
// skills, and workflows pass through; tasks superseded by a native skill of
// the same command name are dropped.
func collectArtifacts(components []discovery.Component) []string {
	var tasks, skills, rest []string
	for _, c := range components {
		switch c.Kind {
		case definition.KindTask:
			tasks = append(tasks, c.RelPath)
		case definition.KindSkill:
			skills = append(skills, c.RelPath)
		default:
			rest = append(rest, c.RelPath)
		}
	}

	kept := artifact.FilterTasks(tasks, skills)

	out := make([]string, 0, len(rest)+len(skills)+len(kept))
	out = append(out, rest...)
	out = append(out, skills...)
	out = append(out, kept...)
	return out
}

// defaultSetup copies each artifact into the target's commands directory
// under its externally visible command name.
func defaultSetup(in SetupInput) (*SetupResult, error) {
	target, _ := Lookup(in.Target)
	dir := filepath.Join(in.ProjectRoot, filepath.FromSlash(target.CommandsDir))

	res := &SetupResult{Target: in.Target}
	for _, rel := range in.Artifacts {
		src := filepath.Join(in.InstalledRoot, filepath.FromSlash(rel))
		data, err := os.ReadFile(src)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("skipping %s: %v", rel, err))
			continue
		}

		dst := filepath.Join(dir, artifact.CommandName(rel))
		if err := platform.WriteFileAtomic(dst, data, 0644); err != nil {
			return nil, fmt.Errorf("installing %s: %w", rel, err)
		}
		res.Created = append(res.Created, dst)
	}
	return res, nil
}
