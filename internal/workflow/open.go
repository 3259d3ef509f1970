package workflow

import (
	"context"
	"fmt"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/logging"
	"github.com/example/workmux/internal/tmux"
)

// Open creates a tmux window for a worktree that already exists, running
// the same environment setup create does minus branch/worktree creation.
func (e *Engine) Open(ctx context.Context, branchName string, opts SetupOptions) (CreateResult, error) {
	logging.Infof("open:start branch=%s", branchName)

	if err := config.ValidatePanes(e.Config.Panes); err != nil {
		return CreateResult{}, err
	}

	isRepo, err := e.Git.IsGitRepo(ctx)
	if err != nil || !isRepo {
		return CreateResult{}, fmt.Errorf("not in a git repository")
	}
	if !tmux.IsRunning(ctx) {
		return CreateResult{}, fmt.Errorf("tmux is not running. Please start a tmux session first.")
	}

	prefix := e.Config.WindowPrefixValue()
	guard := CanOpenWindow(OpenWindowContext{
		MuxRunning:   true,
		WindowExists: tmux.WindowExists(ctx, prefix, branchName),
		WindowName:   tmux.Prefixed(prefix, branchName),
	})
	if err := guard.Error(); err != nil {
		return CreateResult{}, err
	}

	worktreePath, err := e.Git.GetWorktreePath(ctx, branchName)
	if err != nil {
		return CreateResult{}, fmt.Errorf("no worktree found for branch %q. Use 'workmux create %s' to create it: %w", branchName, branchName, err)
	}

	result, err := e.setupEnvironment(ctx, branchName, worktreePath, opts)
	if err != nil {
		return result, err
	}
	logging.Infof("open:completed branch=%s path=%s", branchName, worktreePath)
	return result, nil
}
