package tmux

import (
	"context"
	"fmt"
	"time"

	"github.com/example/workmux/internal/config"
)

// CreateWorktreeWindow creates the tmux window for a worktree: a new window
// rooted at worktreePath, laid out according to the repo's configured panes
// (or a single plain shell when none are configured), and selected so it's
// immediately visible.
func CreateWorktreeWindow(ctx context.Context, prefix, windowName, worktreePath string, panes []config.PaneConfig) error {
	if err := CreateWindow(ctx, prefix, windowName, worktreePath); err != nil {
		return fmt.Errorf("create window %s: %w", windowName, err)
	}

	result, err := SetupPanes(ctx, prefix, windowName, panes, worktreePath)
	if err != nil {
		return fmt.Errorf("set up panes for %s: %w", windowName, err)
	}

	if result.FocusPaneIndex != 0 {
		if err := SelectPane(ctx, prefix, windowName, result.FocusPaneIndex); err != nil {
			return fmt.Errorf("focus pane %d in %s: %w", result.FocusPaneIndex, windowName, err)
		}
	}

	return SelectWindow(ctx, prefix, windowName)
}

// CloseWorktreeWindow kills the window for a worktree. If running from
// inside that same window, it schedules the kill for after a short delay so
// the calling process (and its shell) can exit cleanly first.
func CloseWorktreeWindow(ctx context.Context, prefix, windowName string, fromInsideWindow bool, delay time.Duration) error {
	if !fromInsideWindow {
		return KillWindow(ctx, prefix, windowName)
	}
	return ScheduleWindowClose(ctx, prefix, windowName, delay)
}
