// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package, then rebuild. Go's //go:embed
// bakes the values into the binary; missing or empty files fall back to the
// hard defaults below.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	CommandPrefix string `yaml:"command_prefix"`
	InstalledDir  string `yaml:"installed_dir"`
	ConfigFile    string `yaml:"config_file"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:       "bmad",
			DisplayName:   "BMAD",
			Description:   "Installer and compiler for declarative agent modules",
			CommandPrefix: "bmad",
			InstalledDir:  "_bmad",
			ConfigFile:    "bmad.yaml",
			EnvPrefix:     "BMAD",
			GoModule:      "github.com/bmad-labs/bmad",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "bmad").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "BMAD").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// CommandPrefix returns the prefix applied to every externally visible
// command name (e.g., "bmad" yields commands like "bmad-shard-doc").
func CommandPrefix() string { load(); return defaults.CommandPrefix }

// InstalledDir returns the installed-root directory name inside a project
// (e.g., "_bmad").
func InstalledDir() string { load(); return defaults.InstalledDir }

// ConfigFile returns the project config file name (e.g., "bmad.yaml").
func ConfigFile() string { load(); return defaults.ConfigFile }

// EnvPrefix returns the environment variable prefix (e.g., "BMAD").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by scripts/rebrand.sh, not
// consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("PROJECT") → "BMAD_PROJECT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
