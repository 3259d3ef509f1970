// Package cli wires cobra commands to the workflow engine: each command
// resolves the current repository, loads config, and constructs the
// collaborators workflow.Engine composes.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/gitutil"
	"github.com/example/workmux/internal/multiplexer"
	"github.com/example/workmux/internal/state"
	"github.com/example/workmux/internal/tmux"
	"github.com/example/workmux/internal/workflow"
)

// newEngine builds a workflow.Engine rooted at the current repository. It's
// called fresh by every command rather than shared, since each invocation
// is a short-lived process.
func newEngine(ctx context.Context) (*workflow.Engine, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	git := gitutil.New(cwd)
	isRepo, err := git.IsGitRepo(ctx)
	if err != nil || !isRepo {
		return nil, fmt.Errorf("not in a git repository")
	}
	repoRoot, err := git.RepoRoot(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve repository root: %w", err)
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	driver, err := tmux.NewDriver()
	if err != nil {
		return nil, fmt.Errorf("connect to tmux: %w", err)
	}

	store, err := state.New()
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	return &workflow.Engine{
		Git:    gitutil.New(repoRoot),
		Mux:    driver,
		Store:  store,
		Config: cfg,
	}, nil
}

// newMultiplexer is the lighter-weight construction set-window-status and
// last-agent need: no repository resolution, since both commands operate
// purely in terms of the current multiplexer pane.
func newMultiplexer() (multiplexer.Multiplexer, error) {
	driver, err := tmux.NewDriver()
	if err != nil {
		return nil, fmt.Errorf("connect to tmux: %w", err)
	}
	return driver, nil
}

// currentDirHandle derives the worktree "handle" (branch name) close uses
// to resolve its target from the current directory, mirroring the layout
// workflow.WorktreePath lays worktrees out in: one directory per branch,
// named after the branch itself.
func currentDirHandle() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return filepath.Base(cwd), nil
}
