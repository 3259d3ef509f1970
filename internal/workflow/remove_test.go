package workflow

import (
	"context"
	"os"
	"testing"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/gitutil"
)

func TestRemoveDeletesWorktreeAndMergedBranch(t *testing.T) {
	repoDir, worktreeDir := newTestRepoWithBranchWorktree(t, "feat")
	runGit(t, repoDir, "merge", "--ff-only", "feat")

	e := &Engine{
		Git:    gitutil.New(repoDir),
		Config: &config.Config{WindowPrefix: "wm:", MainBranch: "main"},
	}

	if err := e.Remove(context.Background(), "feat", RemoveOptions{}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(worktreeDir); err == nil {
		t.Fatalf("expected worktree directory to be gone")
	}
}

func TestRemoveRejectsUnmergedBranchWithoutForce(t *testing.T) {
	repoDir, _ := newTestRepoWithBranchWorktree(t, "feat")

	e := &Engine{
		Git:    gitutil.New(repoDir),
		Config: &config.Config{WindowPrefix: "wm:", MainBranch: "main"},
	}

	err := e.Remove(context.Background(), "feat", RemoveOptions{})
	if err == nil {
		t.Fatalf("expected error removing unmerged branch without --force")
	}
}

func TestRemoveForcesUnmergedBranchDeletion(t *testing.T) {
	repoDir, _ := newTestRepoWithBranchWorktree(t, "feat")

	e := &Engine{
		Git:    gitutil.New(repoDir),
		Config: &config.Config{WindowPrefix: "wm:", MainBranch: "main"},
	}

	if err := e.Remove(context.Background(), "feat", RemoveOptions{Force: true}); err != nil {
		t.Fatalf("Remove with Force: %v", err)
	}
}
