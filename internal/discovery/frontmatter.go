package discovery

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Frontmatter is the metadata block at the top of a compiled .md artifact.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Standalone  bool   `yaml:"standalone"`
}

var frontmatterDelim = []byte("---\n")

// ParseFrontmatter extracts the leading YAML frontmatter from an artifact.
// A document without a frontmatter block yields a zero Frontmatter and no
// error; a block that is present but malformed is an error.
func ParseFrontmatter(data []byte) (Frontmatter, error) {
	var fm Frontmatter

	if !bytes.HasPrefix(data, frontmatterDelim) {
		return fm, nil
	}
	rest := data[len(frontmatterDelim):]
	end := bytes.Index(rest, frontmatterDelim)
	if end < 0 {
		return fm, fmt.Errorf("unterminated frontmatter block")
	}

	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return fm, nil
}
