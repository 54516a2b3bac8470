// Package workspace resolves the project root and installed-root directory
// layout. A project is any directory holding a bmad.yaml settings file or an
// existing _bmad installed root; commands run from a subdirectory walk upward
// to find it.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmad-labs/bmad/internal/branding"
)

// Directory and file name constants for the installed-root convention.
const (
	CfgDir          = "_cfg"
	AgentsDir       = "agents"
	SkillsDir       = "skills"
	TasksDir        = "tasks"
	WorkflowsDir    = "workflows"
	StateFile       = "manifest.yaml"
	HelpCatalogFile = "help-catalog.csv"
	ModuleHelpFile  = "help.csv"
)

// FindProjectRoot locates the project root for the given start directory.
// It checks the BMAD_PROJECT environment variable first, then walks upward
// from start looking for bmad.yaml or a _bmad directory.
func FindProjectRoot(start string) (string, error) {
	if v := os.Getenv(branding.EnvVar("PROJECT")); v != "" {
		return filepath.Abs(v)
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if isProjectRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s or %s found in %s or any parent directory",
				branding.ConfigFile(), branding.InstalledDir(), start)
		}
		dir = parent
	}
}

func isProjectRoot(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, branding.ConfigFile())); err == nil {
		return true
	}
	if info, err := os.Stat(filepath.Join(dir, branding.InstalledDir())); err == nil && info.IsDir() {
		return true
	}
	return false
}

// InstalledRoot returns the installed-root path for a project root.
func InstalledRoot(projectRoot string) string {
	return filepath.Join(projectRoot, branding.InstalledDir())
}

// CfgPath returns the path of the _cfg directory inside an installed root.
func CfgPath(installedRoot string) string {
	return filepath.Join(installedRoot, CfgDir)
}

// StatePath returns the path of the installation-state manifest.
func StatePath(installedRoot string) string {
	return filepath.Join(CfgPath(installedRoot), StateFile)
}

// ModuleDir returns the directory of one module inside an installed root.
func ModuleDir(installedRoot, module string) string {
	return filepath.Join(installedRoot, module)
}

// EnsureLayout creates the installed root and its _cfg directory.
func EnsureLayout(installedRoot string) error {
	if err := os.MkdirAll(CfgPath(installedRoot), 0755); err != nil {
		return fmt.Errorf("creating installed root %s: %w", installedRoot, err)
	}
	return nil
}
