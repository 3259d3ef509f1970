package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/workmux/internal/config"
)

func TestRunFileOpsCopiesFile(t *testing.T) {
	repoDir := t.TempDir()
	worktreeDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(repoDir, ".env"), []byte("SECRET=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ops := []config.FileOp{{Src: ".env", Dest: ".env", Kind: config.FileOpCopy}}
	if err := runFileOps(ops, repoDir, worktreeDir); err != nil {
		t.Fatalf("runFileOps: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(worktreeDir, ".env"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(got) != "SECRET=1\n" {
		t.Fatalf("unexpected contents: %q", got)
	}
}

func TestRunFileOpsSymlinksFile(t *testing.T) {
	repoDir := t.TempDir()
	worktreeDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(repoDir, "config.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ops := []config.FileOp{{Src: "config.json", Dest: "config.json", Kind: config.FileOpSymlink}}
	if err := runFileOps(ops, repoDir, worktreeDir); err != nil {
		t.Fatalf("runFileOps: %v", err)
	}

	linkPath := filepath.Join(worktreeDir, "config.json")
	target, err := os.Readlink(linkPath)
	if err != nil {
		t.Fatalf("expected symlink, got: %v", err)
	}
	if target != filepath.Join(repoDir, "config.json") {
		t.Fatalf("unexpected symlink target: %s", target)
	}
}

func TestRunFileOpsSkipsMissingSource(t *testing.T) {
	repoDir := t.TempDir()
	worktreeDir := t.TempDir()

	ops := []config.FileOp{{Src: "missing.env", Dest: "missing.env", Kind: config.FileOpCopy}}
	if err := runFileOps(ops, repoDir, worktreeDir); err != nil {
		t.Fatalf("expected missing source to be skipped, not errored: %v", err)
	}
	if _, err := os.Stat(filepath.Join(worktreeDir, "missing.env")); err == nil {
		t.Fatalf("expected no file to be created for missing source")
	}
}

func TestRunHooksOnlyRunsMatchingPhase(t *testing.T) {
	workdir := t.TempDir()
	marker := filepath.Join(workdir, "marker")

	hooks := []config.Hook{
		{Phase: config.HookPreDelete, Command: "touch should-not-exist"},
		{Phase: config.HookPostCreate, Command: "touch " + marker},
	}

	ran, err := runHooks(context.Background(), hooks, config.HookPostCreate, workdir)
	if err != nil {
		t.Fatalf("runHooks: %v", err)
	}
	if !ran {
		t.Fatalf("expected ran=true")
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("expected post_create hook to run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(workdir, "should-not-exist")); err == nil {
		t.Fatalf("pre_delete hook should not have run")
	}
}

func TestRunHooksReturnsFalseWhenNoneMatch(t *testing.T) {
	workdir := t.TempDir()
	hooks := []config.Hook{{Phase: config.HookPreDelete, Command: "true"}}

	ran, err := runHooks(context.Background(), hooks, config.HookPostCreate, workdir)
	if err != nil {
		t.Fatalf("runHooks: %v", err)
	}
	if ran {
		t.Fatalf("expected ran=false when no hook matches phase")
	}
}
