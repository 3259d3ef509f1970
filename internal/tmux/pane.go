package tmux

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/example/workmux/internal/config"
)

// BuildStartupCommand wraps a user-supplied pane command so it runs once and
// then leaves an interactive login shell open in its place. Returns ok=false
// when command is empty (the pane should just start an ordinary shell).
func BuildStartupCommand(command string) (full string, ok bool) {
	if command == "" {
		return "", false
	}
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	escaped := strings.ReplaceAll(command, `'`, `'\''`)
	// -l starts a login shell so pane commands see the same environment as
	// panes with no explicit command (tmux itself starts login shells).
	return fmt.Sprintf(`%s -lc '%s; exec %s -l'`, shell, escaped, shell), true
}

// SplitPaneWithCommand splits an existing pane and optionally runs command
// in the new pane.
func SplitPaneWithCommand(ctx context.Context, prefix, windowName string, paneIndex int, dir config.SplitDirection, workingDir, command string) error {
	splitArg := "-h"
	if dir == config.SplitVertical {
		splitArg = "-v"
	}
	target := fmt.Sprintf("=%s.%d", Prefixed(prefix, windowName), paneIndex)
	cmd := tmuxCmd("split-window", splitArg, "-t", target, "-c", workingDir)
	if command != "" {
		cmd = cmd.Arg(command)
	}
	return cmd.Run(ctx)
}

// RespawnPane replaces a pane's running process with command, rooted in
// workingDir.
func RespawnPane(ctx context.Context, prefix, windowName string, paneIndex int, workingDir, command string) error {
	target := fmt.Sprintf("=%s.%d", Prefixed(prefix, windowName), paneIndex)
	return tmuxCmd("respawn-pane", "-t", target, "-c", workingDir, "-k", command).Run(ctx)
}

// PaneSetupResult reports which pane index should receive focus once setup
// completes.
type PaneSetupResult struct {
	FocusPaneIndex int
}

// SetupPanes lays out a window's panes according to the repo's configured
// pane list: pane 0 reuses the window's initial pane (respawned with its
// command if one is set), and every later entry with a Split direction adds
// a new pane by splitting an existing one.
func SetupPanes(ctx context.Context, prefix, windowName string, panes []config.PaneConfig, workingDir string) (PaneSetupResult, error) {
	if len(panes) == 0 {
		return PaneSetupResult{}, nil
	}

	focusIndex := -1

	first := panes[0]
	if startup, ok := BuildStartupCommand(first.Command); ok {
		if err := RespawnPane(ctx, prefix, windowName, 0, workingDir, startup); err != nil {
			return PaneSetupResult{}, err
		}
	}
	if first.Focus {
		focusIndex = 0
	}

	actualPaneCount := 1
	for _, pane := range panes[1:] {
		if pane.Split == "" {
			continue
		}
		targetPane := actualPaneCount - 1
		if pane.Target != nil {
			targetPane = *pane.Target
		}
		startup, _ := BuildStartupCommand(pane.Command)
		if err := SplitPaneWithCommand(ctx, prefix, windowName, targetPane, pane.Split, workingDir, startup); err != nil {
			return PaneSetupResult{}, err
		}
		newIndex := actualPaneCount
		if pane.Focus {
			focusIndex = newIndex
		}
		actualPaneCount++
	}

	if focusIndex < 0 {
		focusIndex = 0
	}
	return PaneSetupResult{FocusPaneIndex: focusIndex}, nil
}
