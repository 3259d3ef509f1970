package workflow

import (
	"context"
	"fmt"

	"github.com/example/workmux/internal/gitutil"
	"github.com/example/workmux/internal/logging"
)

// MergeOptions are the flags merge accepts.
type MergeOptions struct {
	IgnoreUncommitted bool
	DeleteRemote      bool
	Rebase            bool
	Squash            bool
}

// Merge brings a feature branch's work back into the default branch, then
// removes the feature worktree and branch.
func (e *Engine) Merge(ctx context.Context, branchName string, opts MergeOptions) (MergeResult, error) {
	worktreePath, err := e.Git.GetWorktreePath(ctx, branchName)
	if err != nil {
		return MergeResult{}, fmt.Errorf("no worktree found for branch %q: %w", branchName, err)
	}
	worktreeGit := gitutil.New(worktreePath)

	hasUncommitted, err := worktreeGit.HasTrackedChanges(ctx)
	if err != nil {
		return MergeResult{}, fmt.Errorf("check for uncommitted changes: %w", err)
	}
	hasUpstream, err := e.Git.BranchHasUpstream(ctx, branchName)
	if err != nil {
		return MergeResult{}, fmt.Errorf("check upstream for %q: %w", branchName, err)
	}

	guard := CanMerge(MergeFlags{
		Rebase:            opts.Rebase,
		Squash:            opts.Squash,
		HasUncommitted:    hasUncommitted,
		IgnoreUncommitted: opts.IgnoreUncommitted,
		DeleteRemote:      opts.DeleteRemote,
		HasUpstream:       hasUpstream,
	})
	if err := guard.Error(); err != nil {
		return MergeResult{}, err
	}

	result := MergeResult{BranchMerged: branchName}

	if hasUncommitted {
		if err := worktreeGit.CommitWithEditor(ctx); err != nil {
			return result, fmt.Errorf("commit staged changes before merge: %w", err)
		}
		result.HadStagedChanges = true
	}

	mainBranch, err := e.Git.DefaultBranch(ctx)
	if err != nil {
		return result, err
	}
	if e.Config.MainBranch != "" {
		mainBranch = e.Config.MainBranch
	}
	result.MainBranch = mainBranch

	mainWorktreePath, err := e.Git.GetWorktreePath(ctx, mainBranch)
	if err != nil {
		// The default branch is usually checked out in the main (non-listed)
		// worktree; fall back to the repository root itself.
		mainWorktreePath, err = e.Git.RepoRoot(ctx)
		if err != nil {
			return result, fmt.Errorf("resolve main worktree: %w", err)
		}
	}
	mainGit := gitutil.New(mainWorktreePath)

	if err := mainGit.SwitchBranch(ctx, mainBranch); err != nil {
		return result, fmt.Errorf("switch to %q: %w", mainBranch, err)
	}

	if opts.Rebase {
		if err := worktreeGit.RebaseOnto(ctx, mainBranch); err != nil {
			return result, fmt.Errorf("rebase %q onto %q: %w", branchName, mainBranch, err)
		}
	}

	if opts.Squash {
		if err := mainGit.MergeSquash(ctx, branchName); err != nil {
			return result, fmt.Errorf("squash merge %q: %w", branchName, err)
		}
	} else {
		if err := mainGit.MergeBranch(ctx, branchName); err != nil {
			return result, fmt.Errorf("merge %q: %w", branchName, err)
		}
	}

	// A squash merge never produces a merge commit that makes the feature
	// branch reachable from main, so `git branch -d` would refuse it even
	// though the work is safely incorporated; force the delete in that case.
	if err := e.Remove(ctx, branchName, RemoveOptions{Force: opts.Squash, DeleteRemote: opts.DeleteRemote}); err != nil {
		return result, fmt.Errorf("clean up %q after merge: %w", branchName, err)
	}

	logging.Infof("merge:completed branch=%s main=%s", branchName, mainBranch)
	return result, nil
}
