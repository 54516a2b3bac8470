// Package compiler turns a loaded component definition (base plus optional
// customization overlay) into its compiled artifact: a tagged-section text
// document with YAML frontmatter, published atomically to the output path.
package compiler
