package gitutil

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// AddWorktree creates a worktree at path checked out on branch. If
// createBranch is set, the branch is created from startPoint in the same
// invocation (`git worktree add <path> -b <branch> <startPoint>`);
// otherwise branch must already exist.
func (c *Client) AddWorktree(ctx context.Context, path, branch, startPoint string, createBranch bool) error {
	args := []string{"worktree", "add"}
	if createBranch {
		args = append(args, path, "-b", branch)
		if startPoint != "" {
			args = append(args, startPoint)
		}
	} else {
		args = append(args, path, branch)
	}
	if err := c.git(args...).Run(ctx); err != nil {
		return fmt.Errorf("create worktree for %q at %s: %w", branch, path, err)
	}
	return nil
}

// AddWorktreeTrackingRemote creates a worktree checked out on a new local
// branch that tracks remoteRef (e.g. "origin/feat" or "fork-alice/feat").
func (c *Client) AddWorktreeTrackingRemote(ctx context.Context, path, branch, remoteRef string) error {
	if err := c.git("worktree", "add", "--track", "-b", branch, path, remoteRef).Run(ctx); err != nil {
		return fmt.Errorf("create tracking worktree for %q at %s: %w", branch, path, err)
	}
	return nil
}

// RemoveWorktree removes the worktree at path. It first tries `git worktree
// remove`, forcing when force is set; if that fails (e.g. the directory was
// already deleted out-of-band) it falls back to a plain directory removal
// plus `git worktree prune`.
func (c *Client) RemoveWorktree(ctx context.Context, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	if err := c.git(args...).Run(ctx); err == nil {
		return nil
	}

	if rmErr := os.RemoveAll(path); rmErr != nil {
		return fmt.Errorf("remove worktree directory %s: %w", path, rmErr)
	}
	return c.git("worktree", "prune").Run(ctx)
}

// ListWorktrees parses `git worktree list --porcelain`.
func (c *Client) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	out, err := c.git("worktree", "list", "--porcelain").Output(ctx)
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}

	var worktrees []Worktree
	var cur Worktree
	flush := func() {
		if cur.Path != "" {
			worktrees = append(worktrees, cur)
		}
		cur = Worktree{}
	}
	for _, line := range strings.Split(out, "\n") {
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			cur.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			cur.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			cur.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "bare":
			cur.Bare = true
		}
	}
	flush()
	return worktrees, nil
}

// GetWorktreePath returns the filesystem path of the worktree checked out
// on branch, or a *WorktreeNotFoundError if none matches.
func (c *Client) GetWorktreePath(ctx context.Context, branch string) (string, error) {
	worktrees, err := c.ListWorktrees(ctx)
	if err != nil {
		return "", err
	}
	for _, wt := range worktrees {
		if wt.Branch == branch {
			return wt.Path, nil
		}
	}
	return "", &WorktreeNotFoundError{Branch: branch}
}

// FindWorktree is an alias for GetWorktreePath kept for callers that only
// need to validate existence (mirrors the original's `find_worktree`).
func (c *Client) FindWorktree(ctx context.Context, handle string) (string, error) {
	return c.GetWorktreePath(ctx, handle)
}
