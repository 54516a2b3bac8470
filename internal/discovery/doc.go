// Package discovery enumerates the components installed under an installed
// root. It walks each module's agents, skills, tasks, and workflows
// directories in lexicographic order and yields one record per valid
// component, reading display metadata from artifact frontmatter. Unreadable
// entries are reported through a warning callback and skipped; a directory
// without its descriptor file is simply not a component yet.
package discovery
