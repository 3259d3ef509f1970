package dashboard

import (
	"path/filepath"
	"strings"
)

// ExtractProjectName walks a worktree path's ancestors looking for a
// component ending in "__worktrees" and returns the prefix before that
// suffix. If no such ancestor exists (a non-workmux worktree, or the main
// worktree itself) it falls back to the path's own directory name.
func ExtractProjectName(path string) string {
	dir := filepath.Clean(path)
	for {
		name := filepath.Base(dir)
		if strings.HasSuffix(name, "__worktrees") {
			return strings.TrimSuffix(name, "__worktrees")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return filepath.Base(filepath.Clean(path))
}

// ExtractWorktreeName derives the worktree handle and main-worktree flag
// from a multiplexer window name, stripping the configured prefix.
func ExtractWorktreeName(windowName, prefix string) (name string, isMain bool) {
	if stripped, ok := strings.CutPrefix(windowName, prefix); ok {
		return stripped, false
	}
	return "main", true
}
