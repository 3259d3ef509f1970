// Package tmux drives tmux window/pane lifecycle for workmux's worktree
// windows: creating, splitting, selecting, and tearing down the window that
// represents a worktree, plus the handshake protocol that synchronizes pane
// startup.
package tmux

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/GianlucaP106/gotmux/gotmux"

	"github.com/example/workmux/internal/procexec"
)

// Client holds the gotmux connection to the local tmux server that New
// establishes. The operations in this package do not go through gotmux:
// they run the tmux CLI via procexec (see tmuxCmd).
type Client struct {
	tmux *gotmux.Tmux
}

// New connects to the default tmux server.
func New() (*Client, error) {
	t, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("connect to tmux: %w", err)
	}
	return &Client{tmux: t}, nil
}

func tmuxCmd(args ...string) *procexec.Cmd {
	return procexec.New("tmux").Args(args...)
}

// Prefixed applies a window-name prefix, e.g. "wm:" + "feature-x".
func Prefixed(prefix, windowName string) string {
	return prefix + windowName
}

// IsRunning reports whether a tmux server is reachable.
func IsRunning(ctx context.Context) bool {
	ok, _ := tmuxCmd("info").Check(ctx)
	return ok
}

// WindowExists reports whether a window with the given (prefixed) name
// exists anywhere on the server.
func WindowExists(ctx context.Context, prefix, windowName string) bool {
	names, err := ListWindowNames(ctx)
	if err != nil {
		return false
	}
	target := Prefixed(prefix, windowName)
	_, ok := names[target]
	return ok
}

// ListWindowNames returns the set of all window names across all sessions.
func ListWindowNames(ctx context.Context) (map[string]bool, error) {
	out, err := tmuxCmd("list-windows", "-F", "#{window_name}").Output(ctx)
	if err != nil {
		// tmux exits nonzero when no windows/sessions exist yet; treat that
		// as an empty set rather than an error.
		return map[string]bool{}, nil
	}
	names := map[string]bool{}
	for _, line := range strings.Split(out, "\n") {
		if line != "" {
			names[line] = true
		}
	}
	return names, nil
}

// CurrentWindowName returns the window name of the pane this process is
// running in, if any (ok=false when not inside tmux).
func CurrentWindowName(ctx context.Context) (name string, ok bool) {
	out, err := tmuxCmd("display-message", "-p", "#{window_name}").Output(ctx)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(out), true
}

// CreateWindow creates a new window with the given (prefixed) name.
func CreateWindow(ctx context.Context, prefix, windowName, workingDir string) error {
	target := Prefixed(prefix, windowName)
	return tmuxCmd("new-window", "-n", target, "-c", workingDir).Run(ctx)
}

// SelectWindow switches the client's attached session to the named window.
func SelectWindow(ctx context.Context, prefix, windowName string) error {
	target := "=" + Prefixed(prefix, windowName)
	return tmuxCmd("select-window", "-t", target).Run(ctx)
}

// SelectPane focuses a specific pane within a window.
func SelectPane(ctx context.Context, prefix, windowName string, paneIndex int) error {
	target := fmt.Sprintf("=%s.%d", Prefixed(prefix, windowName), paneIndex)
	return tmuxCmd("select-pane", "-t", target).Run(ctx)
}

// KillWindow destroys a window immediately.
func KillWindow(ctx context.Context, prefix, windowName string) error {
	target := "=" + Prefixed(prefix, windowName)
	return tmuxCmd("kill-window", "-t", target).Run(ctx)
}

// ScheduleWindowClose asks the tmux server to kill a window after delay has
// elapsed, via a detached run-shell. Used when the command tearing down a
// window is itself executing inside that window and can't kill its own pane
// out from under itself.
func ScheduleWindowClose(ctx context.Context, prefix, windowName string, delay time.Duration) error {
	target := "=" + Prefixed(prefix, windowName)
	script := fmt.Sprintf("sleep %.3f; tmux kill-window -t %s >/dev/null 2>&1", delay.Seconds(), target)
	return tmuxCmd("run-shell", script).Run(ctx)
}
