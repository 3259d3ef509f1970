package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/gitutil"
)

type fakePRLookup struct {
	summaries map[string]*PRSummary
}

func (f *fakePRLookup) Lookup(ctx context.Context, branch string) (*PRSummary, error) {
	if s, ok := f.summaries[branch]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("no PR for %s", branch)
}

func TestListExcludesMainWorktreeAndReportsMuxWindow(t *testing.T) {
	repoDir, _ := newTestRepoWithBranchWorktree(t, "feat")
	e := &Engine{
		Git:    gitutil.New(repoDir),
		Mux:    &fakeMux{windows: map[string]bool{"wm:feat": true}},
		Config: &config.Config{WindowPrefix: "wm:", MainBranch: "main"},
	}

	infos, err := e.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected exactly one worktree (main excluded), got %+v", infos)
	}
	if infos[0].Branch != "feat" {
		t.Fatalf("expected feat, got %+v", infos[0])
	}
	if !infos[0].HasMuxWindow {
		t.Fatalf("expected HasMuxWindow true")
	}
	if !infos[0].HasUnmerged {
		t.Fatalf("expected feat to be unmerged relative to main")
	}
}

func TestListPopulatesPRInfoWhenLookupProvided(t *testing.T) {
	repoDir, _ := newTestRepoWithBranchWorktree(t, "feat")
	e := &Engine{
		Git:    gitutil.New(repoDir),
		Mux:    &fakeMux{windows: map[string]bool{}},
		Config: &config.Config{WindowPrefix: "wm:", MainBranch: "main"},
	}

	pr := &fakePRLookup{summaries: map[string]*PRSummary{"feat": {Number: 7, State: "open"}}}
	infos, err := e.List(context.Background(), pr)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 || infos[0].PRInfo == nil || infos[0].PRInfo.Number != 7 {
		t.Fatalf("expected PR info populated, got %+v", infos)
	}
}
