// Package config loads the project-level configuration file (bmad.yaml) via
// Viper and derives the variable-resolution table consumed by the definition
// compiler. The configuration is loaded once at process start and passed
// explicitly to every component that needs it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmad-labs/bmad/internal/branding"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration record. It carries the resolved
// project paths and the parsed settings file; components receive it as an
// argument, never through package state.
type Config struct {
	ProjectRoot   string
	InstalledRoot string

	v *viper.Viper
}

// Load reads <projectRoot>/bmad.yaml (if present) plus BMAD_* environment
// variables. A missing settings file is not an error; every value has a
// usable zero default.
func Load(projectRoot string) (*Config, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root %s: %w", projectRoot, err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(abs, branding.ConfigFile()))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(v.ConfigFileUsed()); statErr == nil {
			return nil, fmt.Errorf("reading %s: %w", v.ConfigFileUsed(), err)
		}
		// No settings file; env and defaults only.
	}

	return &Config{
		ProjectRoot:   abs,
		InstalledRoot: filepath.Join(abs, branding.InstalledDir()),
		v:             v,
	}, nil
}

// Get returns a string setting by key, or "" if unset.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// GetStringSlice returns a list setting by key.
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// Variables builds the resolution table for {placeholder} substitution:
// computed paths first, then every scalar setting from bmad.yaml under its
// own key. Settings never shadow the computed path variables.
func (c *Config) Variables() map[string]string {
	vars := make(map[string]string)

	for _, key := range c.v.AllKeys() {
		if s := c.v.GetString(key); s != "" {
			vars[key] = s
		}
	}

	vars["project-root"] = c.ProjectRoot
	vars["installed-root"] = c.InstalledRoot
	if _, ok := vars["output_folder"]; !ok {
		vars["output_folder"] = filepath.Join(c.ProjectRoot, "docs")
	}

	return vars
}
