// Package catalog merges per-module help catalogs into the single
// help-catalog.csv inside the installed root's _cfg directory. Rows are
// keyed by externally visible command name; a command contributed by several
// modules appears exactly once, first contributor wins.
package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmad-labs/bmad/internal/platform"
	"github.com/bmad-labs/bmad/internal/workspace"
)

// header is the fixed help-catalog column set. The name column is the
// dedup key.
var header = []string{"module", "name", "trigger", "description"}

// MergeResult summarizes a catalog merge.
type MergeResult struct {
	OutputPath string
	Rows       int // data rows written, header excluded
	Duplicates int // rows dropped because an earlier module owned the name
}

// Merge reads each module's help.csv partial catalog (modules without one
// contribute nothing), deduplicates by command name, and atomically rewrites
// _cfg/help-catalog.csv. Module order determines precedence and output order.
func Merge(installedRoot string, modules []string) (*MergeResult, error) {
	seen := make(map[string]bool)
	merged := [][]string{header}
	duplicates := 0

	for _, module := range modules {
		path := filepath.Join(workspace.ModuleDir(installedRoot, module), workspace.ModuleHelpFile)
		rows, err := readPartial(path)
		if err != nil {
			return nil, fmt.Errorf("reading help catalog for module %s: %w", module, err)
		}
		for _, row := range rows {
			name := commandName(row)
			if name == "" {
				continue
			}
			if seen[name] {
				duplicates++
				continue
			}
			seen[name] = true
			merged = append(merged, row)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(merged); err != nil {
		return nil, fmt.Errorf("encoding help catalog: %w", err)
	}

	out := filepath.Join(workspace.CfgPath(installedRoot), workspace.HelpCatalogFile)
	if err := platform.WriteFileAtomic(out, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing help catalog: %w", err)
	}

	return &MergeResult{OutputPath: out, Rows: len(merged) - 1, Duplicates: duplicates}, nil
}

// readPartial loads one module's partial catalog, dropping its header row
// and padding short rows to the merged schema.
func readPartial(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == header[0] {
			continue // partial's own header
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		rows = append(rows, rec[:len(header)])
	}
	return rows, nil
}

// commandName extracts the dedup key from a row.
func commandName(row []string) string {
	if len(row) < 2 {
		return ""
	}
	return row[1]
}
