package workflow

import "fmt"

// GuardResult is the outcome of a pure precondition check: no I/O, just a
// yes/no answer and, when the answer is no, an actionable reason.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// MergeFlags is the subset of merge options the guard layer needs to see
// before any git or multiplexer call is made.
type MergeFlags struct {
	Rebase            bool
	Squash            bool
	HasUncommitted    bool
	IgnoreUncommitted bool
	DeleteRemote      bool
	HasUpstream       bool
}

// CanMerge evaluates every merge precondition at once so the guard layer is
// the single place that can reject a merge before it touches git or tmux.
func CanMerge(f MergeFlags) GuardResult {
	if f.Rebase && f.Squash {
		return GuardResult{
			Allowed: false,
			Reason:  "--rebase and --squash cannot be combined; pick one",
		}
	}
	if f.HasUncommitted && !f.IgnoreUncommitted {
		return GuardResult{
			Allowed: false,
			Reason:  "worktree has uncommitted changes; commit them, pass --ignore-uncommitted, or run the commit editor",
		}
	}
	if f.DeleteRemote && !f.HasUpstream {
		return GuardResult{
			Allowed: false,
			Reason:  "branch has no upstream tracking configuration; cannot delete a remote branch that doesn't exist",
		}
	}
	return GuardResult{Allowed: true}
}

// RemoveFlags is what the guard layer needs before deleting a worktree and
// its branch.
type RemoveFlags struct {
	Force       bool
	HasUnmerged bool
}

// CanRemove evaluates whether a worktree can be removed without --force.
// Removal of an unmerged branch without --force would silently discard
// commits the git CLI itself would otherwise refuse with -d; the guard
// surfaces this before the worktree directory is touched.
func CanRemove(f RemoveFlags) GuardResult {
	if f.HasUnmerged && !f.Force {
		return GuardResult{
			Allowed: false,
			Reason:  "branch has unmerged commits; use --force to delete it anyway",
		}
	}
	return GuardResult{Allowed: true}
}

// CanOpenWindow evaluates whether a window can be created for a worktree:
// tmux must be reachable, and no window with that name may already exist.
type OpenWindowContext struct {
	MuxRunning   bool
	WindowExists bool
	WindowName   string
}

func CanOpenWindow(ctx OpenWindowContext) GuardResult {
	if !ctx.MuxRunning {
		return GuardResult{
			Allowed: false,
			Reason:  "tmux is not running. Please start a tmux session first.",
		}
	}
	if ctx.WindowExists {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf(
				"A tmux window named '%s' already exists. To switch to it, run: tmux select-window -t '%s'",
				ctx.WindowName, ctx.WindowName,
			),
		}
	}
	return GuardResult{Allowed: true}
}
