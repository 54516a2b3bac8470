// Package artifact maps installed component paths to their externally
// visible command names and filters task artifacts that are superseded by an
// equivalent native skill. Both operations are pure; manifests and
// integration targets rely on the mapping being stable across runs.
package artifact
