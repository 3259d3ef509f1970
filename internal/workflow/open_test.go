package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/gitutil"
)

func TestOpenRejectsInvalidPaneConfig(t *testing.T) {
	repoDir, _ := newTestRepoWithBranchWorktree(t, "feat")
	e := &Engine{
		Git: gitutil.New(repoDir),
		Mux: &fakeMux{},
		Config: &config.Config{
			WindowPrefix: "wm:",
			Panes:        []config.PaneConfig{{Command: "vim", Split: "diagonal"}},
		},
	}

	_, err := e.Open(context.Background(), "feat", DefaultSetupOptions())
	if err == nil {
		t.Fatalf("expected error for invalid pane split direction")
	}
}

func TestOpenRejectsNonGitDirectory(t *testing.T) {
	dir := t.TempDir()
	// Nested directory with no .git anywhere above it in this temp tree.
	nonRepo := filepath.Join(dir, "not-a-repo")
	if err := os.Mkdir(nonRepo, 0o755); err != nil {
		t.Fatal(err)
	}
	e := &Engine{
		Git:    gitutil.New(nonRepo),
		Mux:    &fakeMux{},
		Config: &config.Config{WindowPrefix: "wm:"},
	}

	_, err := e.Open(context.Background(), "feat", DefaultSetupOptions())
	if err == nil {
		t.Fatalf("expected error opening outside a git repository")
	}
}
