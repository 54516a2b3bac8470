package manifest

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"

	"github.com/bmad-labs/bmad/internal/platform"
)

// State is the installation-state manifest: which modules and integration
// targets were selected by prior runs. The orchestrator reads it to avoid
// re-prompting and rewrites it on every install.
type State struct {
	Installation Installation `yaml:"installation"`
	Modules      []string     `yaml:"modules"`
	IDEs         []string     `yaml:"ides"`
}

// Installation records the installer version and timestamp of the last run.
type Installation struct {
	Version string `yaml:"version"`
	Date    string `yaml:"date"`
}

// LoadState reads the installation-state manifest. A missing file returns
// (nil, nil): the caller treats that as a fresh install.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &st, nil
}

// SaveState atomically rewrites the installation-state manifest.
func SaveState(path string, st *State) error {
	data, err := yamlMarshalState(st)
	if err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(path, data, 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func yamlMarshalState(st *State) ([]byte, error) {
	data, err := yaml.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encoding installation state: %w", err)
	}
	return data, nil
}

// OlderThan reports whether the recorded installer version is older than the
// given one. Unparseable versions (e.g. "dev" builds) compare as not older.
func (s *State) OlderThan(version string) bool {
	prev, err := semver.NewVersion(s.Installation.Version)
	if err != nil {
		return false
	}
	curr, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return prev.LessThan(curr)
}
