// Package manifest regenerates the on-disk manifests inside an installed
// root's _cfg directory: one CSV per component kind plus the YAML
// installation-state file. Generation is authoritative: every file is
// rebuilt from the current filesystem state, so rows for components removed
// from disk never survive a re-run, and repeating a run with no filesystem
// change produces byte-identical files.
package manifest
