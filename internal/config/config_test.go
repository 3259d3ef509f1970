package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WindowPrefix != defaultWindowPrefix {
		t.Fatalf("got prefix %q, want default", cfg.WindowPrefix)
	}
	if cfg.StaleAfterSeconds != defaultStaleAfterSeconds {
		t.Fatalf("got stale-after %d, want default", cfg.StaleAfterSeconds)
	}
}

func TestLoadParsesPanesAndHooks(t *testing.T) {
	dir := t.TempDir()
	content := `
window_prefix: "ws:"
main_branch: develop
panes:
  - command: vim
    focus: true
  - split: vertical
    command: npm run dev
hooks:
  - phase: post_create
    command: npm install
file_ops:
  - src: .env.example
    dest: .env
    kind: copy
`
	if err := os.WriteFile(filepath.Join(dir, ".workmux.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WindowPrefix != "ws:" {
		t.Fatalf("got prefix %q", cfg.WindowPrefix)
	}
	if len(cfg.Panes) != 2 || !cfg.Panes[0].Focus {
		t.Fatalf("unexpected panes: %+v", cfg.Panes)
	}
	if len(cfg.Hooks) != 1 || cfg.Hooks[0].Phase != HookPostCreate {
		t.Fatalf("unexpected hooks: %+v", cfg.Hooks)
	}
	if len(cfg.FileOps) != 1 || cfg.FileOps[0].Kind != FileOpCopy {
		t.Fatalf("unexpected file ops: %+v", cfg.FileOps)
	}
}

func TestLoadRejectsMultipleFocusPanes(t *testing.T) {
	dir := t.TempDir()
	content := `
panes:
  - command: vim
    focus: true
  - command: zsh
    focus: true
`
	if err := os.WriteFile(filepath.Join(dir, ".workmux.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for two focus panes")
	}
}

func TestValidatePanesRejectsBadSplit(t *testing.T) {
	err := ValidatePanes([]PaneConfig{{Split: "diagonal"}})
	if err == nil {
		t.Fatal("expected error for invalid split")
	}
}
