package artifact

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmad-labs/bmad/internal/branding"
)

// kindDirs are the well-known component directory segments. Everything up to
// and including the first kind segment is dropped from the command name; the
// command prefix stands in for it.
var kindDirs = map[string]bool{
	"agents":    true,
	"skills":    true,
	"tasks":     true,
	"workflows": true,
}

// descriptorFiles are per-directory descriptor names whose own token carries
// no information; only their extension survives into the command name.
var descriptorFiles = map[string]bool{
	"SKILL.md":      true,
	"AGENT.md":      true,
	"workflow.yaml": true,
}

// CommandName maps a component's relative path to its externally visible
// command name, e.g. "core/skills/shard-doc/SKILL.md" → "bmad-shard-doc.md".
// The kind directory segment and the descriptor filename token are dropped,
// the remaining segments are dash-joined behind the command prefix, and the
// final extension is kept.
//
// The function is pure and total: malformed input maps to a low-quality but
// defined and stable name, never an error.
func CommandName(relPath string) string {
	segs := splitPath(relPath)

	// Drop everything up to and including the first kind segment.
	for i, seg := range segs {
		if kindDirs[seg] && i+1 < len(segs) {
			segs = segs[i+1:]
			break
		}
	}

	ext := ""
	if len(segs) > 0 {
		last := segs[len(segs)-1]
		ext = path.Ext(last)
		if descriptorFiles[last] {
			segs = segs[:len(segs)-1]
		} else {
			segs[len(segs)-1] = strings.TrimSuffix(last, ext)
		}
	}

	name := branding.CommandPrefix()
	if len(segs) > 0 {
		name += "-" + strings.Join(segs, "-")
	}
	return name + ext
}

// splitPath normalizes separators and returns the non-empty path segments.
func splitPath(p string) []string {
	var segs []string
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg != "" && seg != "." {
			segs = append(segs, seg)
		}
	}
	return segs
}
