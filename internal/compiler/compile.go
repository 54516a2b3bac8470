package compiler

import (
	"fmt"

	"github.com/bmad-labs/bmad/internal/definition"
	"github.com/bmad-labs/bmad/internal/platform"
)

// Options controls a single compile call.
type Options struct {
	// Variables is the placeholder resolution table. Unresolved placeholders
	// pass through verbatim.
	Variables map[string]string
}

// Result describes a successful compile.
type Result struct {
	OutputPath string
	Kind       definition.Kind
	ID         string
	Module     string
}

// Compile loads the base definition at defPath, deep-merges the overlay at
// overlayPath (empty string means no overlay; a named but missing overlay is
// an error), resolves placeholder variables, renders the tagged-section
// artifact, and writes it atomically to outPath. Exactly one file is
// published per call; a failure at any stage publishes nothing.
func Compile(defPath, overlayPath, outPath string, opts Options) (*Result, error) {
	def, err := definition.Load(defPath)
	if err != nil {
		return nil, err
	}

	var overlay map[string]any
	if overlayPath != "" {
		overlay, err = definition.LoadOverlay(overlayPath, def.Kind)
		if err != nil {
			return nil, err
		}
	}

	merged := definition.Merge(def.Tree, overlay)
	resolved := definition.Resolve(merged, opts.Variables)

	rendered := Render(def.Kind, resolved)

	if err := platform.WriteFileAtomic(outPath, rendered, 0644); err != nil {
		return nil, fmt.Errorf("writing artifact for %s: %w", def.ID(), err)
	}

	return &Result{
		OutputPath: outPath,
		Kind:       def.Kind,
		ID:         def.ID(),
		Module:     def.Module(),
	}, nil
}
