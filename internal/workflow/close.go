package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const closeScheduleDelay = 100 * time.Millisecond

// Close tears down the tmux window for a worktree, leaving the worktree on
// disk. name is optional: when empty, the current tmux window is preferred
// if it carries the configured prefix, otherwise a handle is resolved from
// the current directory (via resolveHandle).
func (e *Engine) Close(ctx context.Context, name string, resolveHandle func() (string, error)) error {
	prefix := e.Config.WindowPrefixValue()

	fullWindowName, isCurrentWindow, err := e.resolveCloseTarget(ctx, name, prefix, resolveHandle)
	if err != nil {
		return err
	}

	if !e.Mux.WindowExistsByFullName(ctx, fullWindowName) {
		return fmt.Errorf("no active tmux window found for '%s'. The worktree exists but has no open window.", fullWindowName)
	}

	if isCurrentWindow {
		return e.Mux.ScheduleWindowClose(ctx, fullWindowName, closeScheduleDelay)
	}
	if err := e.Mux.KillWindow(ctx, fullWindowName); err != nil {
		return fmt.Errorf("close tmux window: %w", err)
	}
	return nil
}

func (e *Engine) resolveCloseTarget(ctx context.Context, name, prefix string, resolveHandle func() (string, error)) (fullName string, isCurrent bool, err error) {
	if name != "" {
		if _, err := e.Git.FindWorktree(ctx, name); err != nil {
			return "", false, fmt.Errorf("no worktree found with name '%s'. Use 'workmux list' to see available worktrees: %w", name, err)
		}
		prefixed := prefix + name
		current, ok := e.Mux.CurrentWindowName(ctx)
		return prefixed, ok && current == prefixed, nil
	}

	if current, ok := e.Mux.CurrentWindowName(ctx); ok {
		if strings.HasPrefix(current, prefix) {
			return current, true, nil
		}
	}

	handle, err := resolveHandle()
	if err != nil {
		return "", false, err
	}
	return prefix + handle, false, nil
}
