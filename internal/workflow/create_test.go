package workflow

import (
	"path/filepath"
	"testing"

	"github.com/example/workmux/internal/config"
)

func TestWorktreePathIsSiblingDirectory(t *testing.T) {
	got := WorktreePath("/home/user/project", "feat")
	want := filepath.Join("/home/user", "project__worktrees", "feat")
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestWorktreePathHandlesNestedBranchNames(t *testing.T) {
	got := WorktreePath("/home/user/project", "feature/foo")
	want := filepath.Join("/home/user", "project__worktrees", "feature", "foo")
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestOverrideFirstPaneCommandWithNoPanesConfigured(t *testing.T) {
	panes := overrideFirstPaneCommand(nil, "claude")
	if len(panes) != 1 || panes[0].Command != "claude" {
		t.Fatalf("got %+v", panes)
	}
}

func TestOverrideFirstPaneCommandReplacesOnlyFirst(t *testing.T) {
	original := []config.PaneConfig{
		{Command: "vim"},
		{Command: "htop", Split: config.SplitVertical},
	}
	got := overrideFirstPaneCommand(original, "claude")
	if got[0].Command != "claude" {
		t.Fatalf("expected first pane overridden, got %+v", got[0])
	}
	if got[1].Command != "htop" {
		t.Fatalf("expected second pane untouched, got %+v", got[1])
	}
	if original[0].Command != "vim" {
		t.Fatalf("expected original slice untouched, got %+v", original[0])
	}
}
