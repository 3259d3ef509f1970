package dashboard

import "testing"

func TestExtractProjectNameFromWorktreesAncestor(t *testing.T) {
	got := ExtractProjectName("/home/user/code/myapp__worktrees/feature-x")
	if got != "myapp" {
		t.Fatalf("got %q, want %q", got, "myapp")
	}
}

func TestExtractProjectNameFallsBackToBaseName(t *testing.T) {
	got := ExtractProjectName("/home/user/code/myapp")
	if got != "myapp" {
		t.Fatalf("got %q, want %q", got, "myapp")
	}
}

func TestExtractWorktreeNameStripsPrefix(t *testing.T) {
	name, isMain := ExtractWorktreeName("wm:feature-x", "wm:")
	if isMain || name != "feature-x" {
		t.Fatalf("got (%q, %v), want (\"feature-x\", false)", name, isMain)
	}
}

func TestExtractWorktreeNameFallsBackToMain(t *testing.T) {
	name, isMain := ExtractWorktreeName("bash", "wm:")
	if !isMain || name != "main" {
		t.Fatalf("got (%q, %v), want (\"main\", true)", name, isMain)
	}
}
