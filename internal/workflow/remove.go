package workflow

import (
	"context"
	"fmt"

	"github.com/example/workmux/internal/logging"
)

// RemoveOptions controls branch deletion forcing and remote cleanup.
type RemoveOptions struct {
	Force        bool
	DeleteRemote bool
}

// Remove deletes a worktree's directory, its local branch, any agent state
// still pointing inside it, and optionally its remote tracking branch.
func (e *Engine) Remove(ctx context.Context, branchName string, opts RemoveOptions) error {
	worktreePath, err := e.Git.GetWorktreePath(ctx, branchName)
	if err != nil {
		return fmt.Errorf("no worktree found for branch %q: %w", branchName, err)
	}

	mainBranch := e.Config.MainBranch
	if mainBranch == "" {
		mainBranch, _ = e.Git.DefaultBranch(ctx)
	}
	unmerged, _ := e.Git.IsUnmerged(ctx, branchName, mainBranch)
	guard := CanRemove(RemoveFlags{Force: opts.Force, HasUnmerged: unmerged})
	if err := guard.Error(); err != nil {
		return err
	}

	if err := e.Git.RemoveWorktree(ctx, worktreePath, opts.Force); err != nil {
		return fmt.Errorf("remove worktree %s: %w", worktreePath, err)
	}

	if err := e.Git.DeleteBranch(ctx, branchName, opts.Force || unmerged); err != nil {
		return fmt.Errorf("delete branch %q: %w", branchName, err)
	}

	if opts.DeleteRemote {
		if err := e.Git.DeleteRemoteBranch(ctx, "origin", branchName); err != nil {
			logging.Warnf("failed to delete remote branch %q: %v", branchName, err)
		}
		e.Git.UnsetBranchUpstream(ctx, branchName)
	}

	if e.Store != nil {
		if err := e.Store.DeleteAgentsUnderPath(worktreePath); err != nil {
			logging.Warnf("failed to clean up agent state under %s: %v", worktreePath, err)
		}
	}

	return nil
}
