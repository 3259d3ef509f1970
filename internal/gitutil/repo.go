package gitutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/workmux/internal/procexec"
)

// Client is the git adapter, scoped to one working directory. Its methods
// take no directory argument; to act on a different directory (e.g. a
// worktree from the main repo), callers create a second Client with New.
type Client struct {
	Dir string
}

// New returns a Client scoped to dir (the git repository or a worktree
// inside it).
func New(dir string) *Client {
	return &Client{Dir: dir}
}

func (c *Client) git(args ...string) *procexec.Cmd {
	return procexec.New("git").Args(args...).Workdir(c.Dir)
}

// IsGitRepo reports whether Dir is inside a git working tree.
func (c *Client) IsGitRepo(ctx context.Context) (bool, error) {
	return c.git("rev-parse", "--git-dir").Check(ctx)
}

// HasCommits reports whether HEAD resolves to a commit.
func (c *Client) HasCommits(ctx context.Context) (bool, error) {
	return c.git("rev-parse", "--verify", "--quiet", "HEAD").Check(ctx)
}

// RepoRoot returns the top-level working directory of the repository.
func (c *Client) RepoRoot(ctx context.Context) (string, error) {
	return c.git("rev-parse", "--show-toplevel").Output(ctx)
}

// CommonDir returns the shared .git directory, resolved to an absolute path
// (worktrees report a relative path into the main repo's .git).
func (c *Client) CommonDir(ctx context.Context) (string, error) {
	out, err := c.git("rev-parse", "--git-common-dir").Output(ctx)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(out) {
		return filepath.Clean(out), nil
	}
	return filepath.Clean(filepath.Join(c.Dir, out)), nil
}

// IsPathIgnored reports whether path is excluded by gitignore rules.
func (c *Client) IsPathIgnored(ctx context.Context, path string) (bool, error) {
	return c.git("check-ignore", "-q", path).Check(ctx)
}

// CurrentBranch returns the checked-out branch name, or "" when HEAD is
// detached.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.git("branch", "--show-current").Output(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsDirty reports whether the working tree has any uncommitted changes
// (tracked or untracked).
func (c *Client) IsDirty(ctx context.Context) (bool, error) {
	out, err := c.git("status", "--porcelain").Output(ctx)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// HasTrackedChanges reports whether any tracked file has staged or unstaged
// modifications (ignores untracked files).
func (c *Client) HasTrackedChanges(ctx context.Context) (bool, error) {
	out, err := c.git("status", "--porcelain", "--untracked-files=no").Output(ctx)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// DirtyFileCount returns the number of entries reported by `git status
// --porcelain`.
func (c *Client) DirtyFileCount(ctx context.Context) (int, error) {
	out, err := c.git("status", "--porcelain").Output(ctx)
	if err != nil {
		return 0, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return 0, nil
	}
	return len(strings.Split(out, "\n")), nil
}

// homeDir resolves $HOME with a fallback to os.UserHomeDir, mirroring how
// XDG-style path resolution prefers the environment variable when present.
func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}
