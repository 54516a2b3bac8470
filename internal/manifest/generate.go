package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/discovery"
	"github.com/bmad-labs/bmad/internal/platform"
	"github.com/bmad-labs/bmad/internal/workspace"
)

// csvHeader is the fixed column set shared by every per-kind manifest.
var csvHeader = []string{"name", "displayName", "description", "module", "path", "standalone"}

// Options controls a generation pass.
type Options struct {
	// Version is the installer version recorded in the state manifest.
	Version string
	// Date is the timestamp recorded for a fresh or upgraded install.
	// A repeat run at the same version preserves the previous date so that
	// unchanged state files stay byte-identical.
	Date string
	// Warn receives non-fatal discovery problems.
	Warn discovery.WarnFunc
}

// Summary reports row counts per kind after a generation pass.
type Summary struct {
	Counts map[definition.Kind]int
	Total  int
}

// FileName returns the manifest file name for a kind (e.g. "skill-manifest.csv").
func FileName(kind definition.Kind) string {
	return string(kind) + "-manifest.csv"
}

// Generate discovers the installed root and rewrites every manifest file
// from scratch. All files are rendered in memory before anything is written,
// so a render failure commits nothing; only an I/O failure during the final
// write phase can leave earlier kinds committed, and it aborts immediately
// with a WriteError.
//
// extraModules and extraIDEs are merged (deduplicated, order preserved) into
// the state manifest's module and target lists alongside what discovery
// found on disk.
func Generate(installedRoot string, extraModules, extraIDEs []string, opts Options) (*Summary, error) {
	components := discovery.Discover(installedRoot, opts.Warn)

	// Render phase: every file becomes bytes before the first write.
	files := make(map[string][]byte, len(definition.AllKinds()))
	summary := &Summary{Counts: make(map[definition.Kind]int)}
	for _, kind := range definition.AllKinds() {
		rows := componentsOfKind(components, kind)
		data, err := renderCSV(rows)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", FileName(kind), err)
		}
		files[FileName(kind)] = data
		summary.Counts[kind] = len(rows)
		summary.Total += len(rows)
	}

	stateData, err := renderState(installedRoot, components, extraModules, extraIDEs, opts)
	if err != nil {
		return nil, err
	}

	// Write phase.
	cfgDir := workspace.CfgPath(installedRoot)
	for _, kind := range definition.AllKinds() {
		path := filepath.Join(cfgDir, FileName(kind))
		if err := platform.WriteFileAtomic(path, files[FileName(kind)], 0644); err != nil {
			return nil, &WriteError{Path: path, Err: err}
		}
	}
	statePath := workspace.StatePath(installedRoot)
	if err := platform.WriteFileAtomic(statePath, stateData, 0644); err != nil {
		return nil, &WriteError{Path: statePath, Err: err}
	}

	return summary, nil
}

// componentsOfKind filters the already-sorted discovery output.
func componentsOfKind(components []discovery.Component, kind definition.Kind) []discovery.Component {
	var out []discovery.Component
	for _, c := range components {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// renderCSV produces one manifest file: the fixed header plus one row per
// component, in discovery order.
func renderCSV(components []discovery.Component) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, c := range components {
		row := []string{c.ID, c.Name, c.Description, c.Module, c.RelPath, strconv.FormatBool(c.Standalone)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderState builds the new installation-state bytes, merging prior state
// with discovered modules and the caller's extra lists.
func renderState(installedRoot string, components []discovery.Component, extraModules, extraIDEs []string, opts Options) ([]byte, error) {
	prev, err := LoadState(workspace.StatePath(installedRoot))
	if err != nil {
		// Unreadable prior state is rebuilt, not fatal: regeneration is
		// authoritative and the alternative is a permanently wedged install.
		if opts.Warn != nil {
			opts.Warn("discarding unreadable installation state: %v", err)
		}
		prev = nil
	}

	var modules []string
	for _, c := range components {
		modules = appendUnique(modules, c.Module)
	}
	slices.Sort(modules)
	if prev != nil {
		for _, m := range prev.Modules {
			modules = appendUnique(modules, m)
		}
	}
	for _, m := range extraModules {
		modules = appendUnique(modules, m)
	}

	var ides []string
	if prev != nil {
		for _, t := range prev.IDEs {
			ides = appendUnique(ides, t)
		}
	}
	for _, t := range extraIDEs {
		ides = appendUnique(ides, t)
	}

	st := &State{
		Installation: Installation{Version: opts.Version, Date: opts.Date},
		Modules:      modules,
		IDEs:         ides,
	}
	if prev != nil && prev.Installation.Version == opts.Version && prev.Installation.Date != "" {
		st.Installation.Date = prev.Installation.Date
	}

	data, err := yamlMarshalState(st)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func appendUnique(list []string, v string) []string {
	if v == "" || slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
