package definition

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Sentinel errors for callers that must distinguish which input failed.
// A batch run treats a failed definition or overlay as fatal to that one
// compile only; errors.Is against these tells the two apart.
var (
	ErrDefinitionLoad = errors.New("definition not loadable")
	ErrOverlayLoad    = errors.New("overlay not loadable")
)

// Load reads and parses a base definition file. The document must have
// exactly one top-level key naming a known kind (agent, task, skill,
// workflow) and must satisfy the embedded JSON schema for that kind.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDefinitionLoad, path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDefinitionLoad, path, err)
	}

	kind, tree, err := splitRoot(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDefinitionLoad, path, err)
	}

	result, err := Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: validating %s: %v", ErrDefinitionLoad, path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s: %s", ErrDefinitionLoad, path, result.Issues[0])
	}

	return &Definition{Kind: kind, Path: path, Tree: tree}, nil
}

// LoadOverlay reads and parses a customization overlay. The overlay may wrap
// its tree under the definition's kind key (mirroring the base file) or give
// the partial tree directly; both decode to the same shape. A missing file is
// an error; callers that want "no overlay" pass no path at all.
func LoadOverlay(path string, kind Kind) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrOverlayLoad, path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrOverlayLoad, path, err)
	}

	// Unwrap a mirrored root key ("agent:", "task:", ...) if present.
	if len(doc) == 1 {
		if inner, ok := doc[string(kind)].(map[string]any); ok {
			return inner, nil
		}
	}
	return doc, nil
}

// splitRoot extracts the single kind key and its attribute tree.
func splitRoot(doc map[string]any) (Kind, map[string]any, error) {
	if len(doc) != 1 {
		return "", nil, fmt.Errorf("expected exactly one top-level kind key, found %d", len(doc))
	}
	for key, val := range doc {
		kind, ok := ParseKind(key)
		if !ok {
			return "", nil, fmt.Errorf("unknown kind %q", key)
		}
		tree, ok := val.(map[string]any)
		if !ok {
			return "", nil, fmt.Errorf("%s root must be a mapping", key)
		}
		return kind, tree, nil
	}
	return "", nil, fmt.Errorf("empty document")
}
