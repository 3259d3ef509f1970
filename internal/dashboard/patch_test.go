package dashboard

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/example/workmux/internal/diffstat"
	"github.com/example/workmux/internal/gitutil"
)

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

func newRepoWithTwoHunkDiff(t *testing.T) (dir string, diff string) {
	dir = t.TempDir()
	runGit(t, dir, "init", "-q", "-b", "main")
	content := "line1\nline2\nline3\nline4\nline5\nline6\nline7\nline8\nline9\nline10\n"
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, dir, "add", "f.txt")
	runGit(t, dir, "commit", "-q", "-m", "initial")

	modified := "line1-changed\nline2\nline3\nline4\nline5\nline6\nline7\nline8\nline9\nline10-changed\n"
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte(modified), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := exec.Command("git", "-C", dir, "diff").Output()
	if err != nil {
		t.Fatalf("git diff: %v", err)
	}
	return dir, string(out)
}

func TestPatchSessionStagesAndTracksProgress(t *testing.T) {
	dir, diff := newRepoWithTwoHunkDiff(t)
	hunks := diffstat.ParseHunks(diff)
	if len(hunks) == 0 {
		t.Fatalf("expected at least one hunk from diff")
	}

	git := gitutil.New(dir)
	session := NewPatchSession(git, hunks)

	for !session.Done() {
		if err := session.Stage(context.Background()); err != nil {
			t.Fatalf("Stage: %v", err)
		}
	}

	processed, total := session.Progress()
	if processed != total {
		t.Fatalf("expected processed==total after staging everything, got %d/%d", processed, total)
	}

	staged := runGit(t, dir, "diff", "--cached", "--stat")
	if staged == "" {
		t.Fatalf("expected staged changes after applying all hunks")
	}
}

func TestPatchSessionSkipDropsHunkWithoutStaging(t *testing.T) {
	dir, diff := newRepoWithTwoHunkDiff(t)
	hunks := diffstat.ParseHunks(diff)
	git := gitutil.New(dir)
	session := NewPatchSession(git, hunks)

	session.Skip()
	processed, total := session.Progress()
	if processed != 1 || total != len(hunks) {
		t.Fatalf("expected 1/%d processed after one skip, got %d/%d", len(hunks), processed, total)
	}

	staged := runGit(t, dir, "diff", "--cached", "--stat")
	if staged != "" {
		t.Fatalf("skip must not stage anything, got: %s", staged)
	}
}

func TestPatchSessionUndoReappliesInverse(t *testing.T) {
	dir, diff := newRepoWithTwoHunkDiff(t)
	hunks := diffstat.ParseHunks(diff)
	git := gitutil.New(dir)
	session := NewPatchSession(git, hunks)

	if err := session.Stage(context.Background()); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	beforeUndo := runGit(t, dir, "diff", "--cached", "--stat")
	if beforeUndo == "" {
		t.Fatalf("expected staged changes before undo")
	}

	if err := session.Undo(context.Background()); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	afterUndo := runGit(t, dir, "diff", "--cached", "--stat")
	if afterUndo != "" {
		t.Fatalf("expected no staged changes after undo, got: %s", afterUndo)
	}

	processed, _ := session.Progress()
	if processed != 0 {
		t.Fatalf("expected processed count reset to 0 after undo, got %d", processed)
	}
}
