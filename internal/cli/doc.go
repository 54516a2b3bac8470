// Package cli defines the cobra command tree for the bmad binary: install,
// compile, manifest, status, create, config, and version.
package cli
