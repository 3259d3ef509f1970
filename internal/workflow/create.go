package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/gitutil"
	"github.com/example/workmux/internal/logging"
	"github.com/example/workmux/internal/tmux"
)

// CreateOptions extends SetupOptions with the create-specific override of
// which ref a new branch is created from.
type CreateOptions struct {
	Setup SetupOptions
	Base  string
}

// createPlan is what resolveCreateSpec decides before any worktree is
// created: the branch name, the base to record, and (for the
// remote-tracking path) the ref the new branch should track.
type createPlan struct {
	branch     string
	base       string
	trackRef   string // non-empty: use AddWorktreeTrackingRemote instead of AddWorktree
	newBranch  bool   // true: branch does not exist locally yet and AddWorktree must create it
}

// Create resolves a branch-or-spec string to a worktree (creating the
// branch and worktree as needed per the precedence rules in SPEC_FULL.md
// §4.1), then runs the shared environment setup.
func (e *Engine) Create(ctx context.Context, spec string, opts CreateOptions) (CreateResult, error) {
	logging.Infof("create:start spec=%s", spec)

	if err := config.ValidatePanes(e.Config.Panes); err != nil {
		return CreateResult{}, err
	}

	isRepo, err := e.Git.IsGitRepo(ctx)
	if err != nil || !isRepo {
		return CreateResult{}, fmt.Errorf("not in a git repository")
	}
	if !opts.Setup.NoWindow && !tmux.IsRunning(ctx) {
		return CreateResult{}, fmt.Errorf("tmux is not running. Please start a tmux session first.")
	}

	plan, err := e.resolveCreateSpec(ctx, spec, opts.Base)
	if err != nil {
		return CreateResult{}, err
	}

	prefix := e.Config.WindowPrefixValue()
	if !opts.Setup.NoWindow {
		guard := CanOpenWindow(OpenWindowContext{
			MuxRunning:   true,
			WindowExists: tmux.WindowExists(ctx, prefix, plan.branch),
			WindowName:   tmux.Prefixed(prefix, plan.branch),
		})
		if err := guard.Error(); err != nil {
			return CreateResult{}, err
		}
	}

	repoRoot, err := e.Git.RepoRoot(ctx)
	if err != nil {
		return CreateResult{}, fmt.Errorf("resolve repository root: %w", err)
	}
	worktreePath := WorktreePath(repoRoot, plan.branch)
	if err := os.MkdirAll(filepath.Dir(worktreePath), 0o755); err != nil {
		return CreateResult{}, fmt.Errorf("create worktree parent directory: %w", err)
	}

	if plan.trackRef != "" {
		if err := e.Git.AddWorktreeTrackingRemote(ctx, worktreePath, plan.branch, plan.trackRef); err != nil {
			return CreateResult{}, err
		}
	} else {
		if err := e.Git.AddWorktree(ctx, worktreePath, plan.branch, plan.base, plan.newBranch); err != nil {
			return CreateResult{}, err
		}
	}

	if err := e.Git.SetBranchBase(ctx, plan.branch, plan.base); err != nil {
		logging.Warnf("failed to record base for %s: %v", plan.branch, err)
	}

	result, err := e.setupEnvironment(ctx, plan.branch, worktreePath, opts.Setup)
	result.Base = plan.base
	if err != nil {
		return result, err
	}
	logging.Infof("create:completed branch=%s path=%s", plan.branch, worktreePath)
	return result, nil
}

// resolveCreateSpec implements the precedence rules: remote-tracking spec,
// fork spec, existing local branch, or a brand new branch from base.
func (e *Engine) resolveCreateSpec(ctx context.Context, spec, baseOverride string) (createPlan, error) {
	if rs, ok := gitutil.ParseRemoteBranchSpec(spec); ok {
		if exists, _ := e.Git.RemoteBranchExists(ctx, rs.Remote, rs.Branch); exists {
			return createPlan{branch: rs.Branch, base: rs.Remote + "/" + rs.Branch, trackRef: rs.Remote + "/" + rs.Branch}, nil
		}
	}

	if fs, ok := gitutil.ParseForkBranchSpec(spec); ok {
		remoteName, err := e.Git.EnsureForkRemote(ctx, fs.Owner)
		if err != nil {
			return createPlan{}, fmt.Errorf("resolve fork remote for %q: %w", fs.Owner, err)
		}
		if err := e.Git.FetchRemote(ctx, remoteName); err != nil {
			return createPlan{}, fmt.Errorf("fetch fork remote %q: %w", remoteName, err)
		}
		trackRef := remoteName + "/" + fs.Branch
		return createPlan{branch: fs.Branch, base: trackRef, trackRef: trackRef}, nil
	}

	if exists, _ := e.Git.BranchExists(ctx, spec); exists {
		base := baseOverride
		if base == "" {
			if b, err := e.Git.GetBranchBase(ctx, spec); err == nil {
				base = b
			}
		}
		return createPlan{branch: spec, base: base}, nil
	}

	base := baseOverride
	if base == "" {
		if e.Config.MainBranch != "" {
			base = e.Config.MainBranch
		} else {
			resolved, err := e.Git.DefaultBranch(ctx)
			if err != nil {
				return createPlan{}, err
			}
			base = resolved
		}
	}
	return createPlan{branch: spec, base: base, newBranch: true}, nil
}

// WorktreePath derives a worktree's path as a sibling of the repository
// root, under "<repo-name>__worktrees/<branch>" — matching the layout the
// dashboard's project-name extraction walks back up to.
func WorktreePath(repoRoot, branch string) string {
	repoName := filepath.Base(repoRoot)
	worktreesDir := filepath.Join(filepath.Dir(repoRoot), repoName+"__worktrees")
	return filepath.Join(worktreesDir, branch)
}
