// Package installer drives a full install pass: it detects prior
// installation state, compiles every agent definition in the selected
// modules, regenerates the manifests, merges the help catalogs, and
// dispatches filtered artifact sets to the configured integration targets.
// It is the only component that triggers writes; everything below it is
// invoked from here.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bmad-labs/bmad/internal/catalog"
	"github.com/bmad-labs/bmad/internal/compiler"
	"github.com/bmad-labs/bmad/internal/config"
	"github.com/bmad-labs/bmad/internal/discovery"
	"github.com/bmad-labs/bmad/internal/ide"
	"github.com/bmad-labs/bmad/internal/manifest"
	"github.com/bmad-labs/bmad/internal/workspace"
)

// definitionSuffix marks agent base definitions inside a module's agents dir.
const definitionSuffix = ".agent.yaml"

// overlaySuffix marks per-agent customization files under _cfg/agents.
const overlaySuffix = ".customize.yaml"

// Options controls one install run.
type Options struct {
	// Version is the installer version recorded in the state manifest.
	Version string
	// Modules selects which modules to install. Empty means: reuse the
	// prior installation's module list, or everything found on disk on a
	// fresh install.
	Modules []string
	// Targets selects integration targets. Empty means reuse prior state.
	Targets []string
	// Warn receives non-fatal problems (discovery skips, stale state).
	Warn discovery.WarnFunc
}

// AgentFailure records one agent compile that failed; the batch carries on.
type AgentFailure struct {
	Definition string
	Err        error
}

// Report is the outcome of an install run: what compiled, what failed and
// why, and what the downstream steps produced.
type Report struct {
	FreshInstall bool
	PriorVersion string
	Compiled     []compiler.Result
	Failed       []AgentFailure
	Manifest     *manifest.Summary
	Catalog      *catalog.MergeResult
	Targets      []ide.SetupResult
}

// Run executes a full install pass against cfg's installed root. Per-agent
// compile failures are collected into the report; a manifest or catalog
// write failure aborts the run, because a desynchronized manifest would
// corrupt every later invocation.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}

	if err := workspace.EnsureLayout(cfg.InstalledRoot); err != nil {
		return nil, err
	}

	report := &Report{FreshInstall: true}

	// Step 1: prior installation state.
	prior, err := manifest.LoadState(workspace.StatePath(cfg.InstalledRoot))
	if err != nil {
		warn("ignoring unreadable installation state: %v", err)
	}
	if prior != nil {
		report.FreshInstall = false
		report.PriorVersion = prior.Installation.Version
	}

	modules := opts.Modules
	if len(modules) == 0 && prior != nil {
		modules = prior.Modules
	}
	if len(modules) == 0 {
		modules = modulesOnDisk(cfg.InstalledRoot)
	}

	targets := opts.Targets
	if len(targets) == 0 && prior != nil {
		targets = prior.IDEs
	}

	// Step 2: compile agents, bounded parallelism, failures isolated.
	report.Compiled, report.Failed = compileAgents(ctx, cfg, modules)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	// Step 3: manifests. Runs strictly after all compiles have settled so it
	// never reads a half-written artifact tree. Failure is fatal.
	summary, err := manifest.Generate(cfg.InstalledRoot, modules, targets, manifest.Options{
		Version: opts.Version,
		Date:    time.Now().UTC().Format("2006-01-02"),
		Warn:    warn,
	})
	if err != nil {
		return report, err
	}
	report.Manifest = summary

	// Step 4: merged help catalog.
	merged, err := catalog.Merge(cfg.InstalledRoot, modules)
	if err != nil {
		return report, err
	}
	report.Catalog = merged

	// Step 5: integration targets.
	if len(targets) > 0 {
		names := make([]ide.TargetName, 0, len(targets))
		for _, t := range targets {
			name, ok := ide.ParseTargetName(t)
			if !ok {
				return report, fmt.Errorf("unknown integration target in selection: %s", t)
			}
			names = append(names, name)
		}
		results, err := ide.Dispatch(names, cfg.ProjectRoot, cfg.InstalledRoot, modules, warn)
		if err != nil {
			return report, err
		}
		report.Targets = results
	}

	return report, nil
}

// compileAgents compiles every agent definition of the selected modules with
// a worker pool bounded by CPU count. Output paths are distinct per
// definition, so no two workers ever write the same file. One agent failing
// never aborts its siblings; failures are collected for the final report.
func compileAgents(ctx context.Context, cfg *config.Config, modules []string) ([]compiler.Result, []AgentFailure) {
	defs := agentDefinitions(cfg.InstalledRoot, modules)

	var (
		mu       sync.Mutex
		compiled []compiler.Result
		failed   []AgentFailure
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return nil // cancelled; skip without publishing
			}

			vars := cfg.Variables()
			vars["module"] = def.module

			res, err := compiler.Compile(def.path, def.overlay, def.outPath, compiler.Options{Variables: vars})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, AgentFailure{Definition: def.path, Err: err})
				return nil
			}
			compiled = append(compiled, *res)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are collected

	sort.Slice(compiled, func(i, j int) bool { return compiled[i].OutputPath < compiled[j].OutputPath })
	sort.Slice(failed, func(i, j int) bool { return failed[i].Definition < failed[j].Definition })
	return compiled, failed
}

// agentDef is one agent compile job.
type agentDef struct {
	module  string
	path    string // base definition
	overlay string // customization overlay, "" if none
	outPath string // compiled artifact
}

// agentDefinitions enumerates *.agent.yaml files under each selected
// module's agents directory, pairing each with its _cfg overlay if present.
func agentDefinitions(installedRoot string, modules []string) []agentDef {
	var defs []agentDef
	for _, module := range modules {
		agentsDir := filepath.Join(workspace.ModuleDir(installedRoot, module), workspace.AgentsDir)
		entries, err := os.ReadDir(agentsDir)
		if err != nil {
			continue // module has no agents
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, definitionSuffix) {
				continue
			}
			id := strings.TrimSuffix(name, definitionSuffix)

			overlay := filepath.Join(workspace.CfgPath(installedRoot), workspace.AgentsDir, id+overlaySuffix)
			if _, err := os.Stat(overlay); err != nil {
				overlay = ""
			}

			defs = append(defs, agentDef{
				module:  module,
				path:    filepath.Join(agentsDir, name),
				overlay: overlay,
				outPath: filepath.Join(agentsDir, id+".md"),
			})
		}
	}
	return defs
}

// modulesOnDisk lists module directories for a fresh install with no
// explicit selection.
func modulesOnDisk(installedRoot string) []string {
	entries, err := os.ReadDir(installedRoot)
	if err != nil {
		return nil
	}
	var modules []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || name == workspace.CfgDir || strings.HasPrefix(name, ".") {
			continue
		}
		modules = append(modules, name)
	}
	sort.Strings(modules)
	return modules
}
