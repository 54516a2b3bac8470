// Package definition loads and transforms declarative component definitions
// (agents, tasks, skills, workflows). It parses the YAML definition and
// overlay files, validates base definitions against the embedded JSON schema,
// deep-merges a customization overlay onto a base tree, and resolves
// {placeholder} variables against a resolution table.
package definition
