package gitutil

import (
	"context"
	"fmt"
)

// CommitWithEditor runs an interactive `git commit`, inheriting the
// controlling terminal so the user's configured editor attaches normally.
func (c *Client) CommitWithEditor(ctx context.Context) error {
	return c.git("commit").Interactive(ctx)
}

// MergeBranch runs `git merge <branch>` in Dir.
func (c *Client) MergeBranch(ctx context.Context, branch string) error {
	if err := c.git("merge", branch).Run(ctx); err != nil {
		return fmt.Errorf("merge %q: %w", branch, err)
	}
	return nil
}

// MergeSquash runs `git merge --squash <branch>`, which stages the result
// without committing.
func (c *Client) MergeSquash(ctx context.Context, branch string) error {
	if err := c.git("merge", "--squash", branch).Run(ctx); err != nil {
		return fmt.Errorf("squash merge %q: %w", branch, err)
	}
	return nil
}

// RebaseOnto runs `git rebase <base>`.
func (c *Client) RebaseOnto(ctx context.Context, base string) error {
	if err := c.git("rebase", base).Run(ctx); err != nil {
		return fmt.Errorf("rebase onto %q: %w", base, err)
	}
	return nil
}

// AbortMerge runs `git merge --abort`.
func (c *Client) AbortMerge(ctx context.Context) error {
	return c.git("merge", "--abort").Run(ctx)
}

// SwitchBranch runs `git switch <branch>`.
func (c *Client) SwitchBranch(ctx context.Context, branch string) error {
	if err := c.git("switch", branch).Run(ctx); err != nil {
		return fmt.Errorf("switch to %q: %w", branch, err)
	}
	return nil
}

// StashPush stashes changes, optionally interactively (--patch) or
// including untracked files.
func (c *Client) StashPush(ctx context.Context, message string, patch, includeUntracked bool) error {
	args := []string{"stash", "push"}
	if message != "" {
		args = append(args, "-m", message)
	}
	if patch {
		return c.git(args...).Args("--patch").Interactive(ctx)
	}
	if includeUntracked {
		args = append(args, "--include-untracked")
	}
	return c.git(args...).Run(ctx)
}

// StashPop runs `git stash pop`.
func (c *Client) StashPop(ctx context.Context) error {
	return c.git("stash", "pop").Run(ctx)
}

// ResetHard runs `git reset --hard <ref>`.
func (c *Client) ResetHard(ctx context.Context, ref string) error {
	return c.git("reset", "--hard", ref).Run(ctx)
}

// StashDance stashes, runs fn in the stashed-clean state, then restores the
// stash regardless of fn's outcome, matching the teacher's
// stash-checkout-pop helper.
func (c *Client) StashDance(ctx context.Context, fn func() error) error {
	dirty, err := c.HasTrackedChanges(ctx)
	if err != nil {
		return err
	}
	if !dirty {
		return fn()
	}
	if err := c.StashPush(ctx, "workmux-autostash", false, false); err != nil {
		return fmt.Errorf("autostash before operation: %w", err)
	}
	fnErr := fn()
	if popErr := c.StashPop(ctx); popErr != nil {
		if fnErr != nil {
			return fmt.Errorf("%w (also failed to restore stash: %v)", fnErr, popErr)
		}
		return fmt.Errorf("restore stash: %w", popErr)
	}
	return fnErr
}

// ConflictVsBase reports whether merging HEAD into base would conflict, via
// `git merge-tree --write-tree <base> HEAD`. Exit status 1 means a conflict
// would occur; any other non-zero status (including "unknown option" on
// older git that lacks --write-tree) is treated as "no conflict detected",
// matching SPEC_FULL.md §4.4.
func (c *Client) ConflictVsBase(ctx context.Context, base string) (bool, error) {
	code, _, err := c.git("merge-tree", "--write-tree", base, "HEAD").ExitCode(ctx)
	if err != nil {
		return false, err
	}
	return code == 1, nil
}
