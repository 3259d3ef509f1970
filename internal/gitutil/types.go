// Package gitutil wraps the git command-line tool behind typed Go methods:
// branch resolution, remote/fork handling, worktree management, and the
// status/diff queries the dashboard consumes.
package gitutil

import "fmt"

// RemoteBranchSpec is a parsed "<remote>/<branch>" create-spec.
type RemoteBranchSpec struct {
	Remote string
	Branch string
}

// ForkBranchSpec is a parsed "<owner>:<branch>" create-spec.
type ForkBranchSpec struct {
	Owner  string
	Branch string
}

// WorktreeNotFoundError is returned when a branch has no associated worktree.
type WorktreeNotFoundError struct {
	Branch string
}

func (e *WorktreeNotFoundError) Error() string {
	return fmt.Sprintf("no worktree found for branch %q", e.Branch)
}

// Worktree describes one entry from `git worktree list`.
type Worktree struct {
	Path   string
	Branch string // empty for detached HEAD
	Head   string
	Bare   bool
}

// GitStatus is the cached, per-worktree status snapshot described in
// SPEC_FULL.md §3 / §4.4. Field tags use snake_case to match the on-disk
// cache format and the serde(default) backward-compatibility story of the
// original implementation.
type GitStatus struct {
	Branch            string `json:"branch"`
	HasUpstream       bool   `json:"has_upstream"`
	Ahead             int    `json:"ahead"`
	Behind            int    `json:"behind"`
	Dirty             bool   `json:"dirty"`
	HasConflict       bool   `json:"has_conflict"`
	BaseBranch        string `json:"base_branch"`
	CommittedAdded    int    `json:"committed_added"`
	CommittedRemoved  int    `json:"committed_removed"`
	UncommittedAdded  int    `json:"uncommitted_added"`
	UncommittedRemove int    `json:"uncommitted_removed"`
	CachedAt          int64  `json:"cached_at"`
}
