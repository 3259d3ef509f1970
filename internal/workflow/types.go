// Package workflow composes the git adapter, the tmux driver, and the agent
// state store into the worktree lifecycle operations: create, open, close,
// merge, remove, and list.
package workflow

import (
	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/gitutil"
	"github.com/example/workmux/internal/multiplexer"
	"github.com/example/workmux/internal/state"
)

// Engine bundles the collaborators every workflow operation composes, so
// each command constructs one Engine rather than threading four parameters
// through every call.
type Engine struct {
	Git    *gitutil.Client
	Mux    multiplexer.Multiplexer
	Store  *state.Store
	Config *config.Config
}

// SetupOptions controls which side effects create/open perform beyond
// worktree and window creation.
type SetupOptions struct {
	RunHooks   bool
	RunFileOps bool
	NoWindow   bool
	// RunCommand overrides the first configured pane's command, if set.
	RunCommand string
}

// DefaultSetupOptions is what create/open use absent any --no-* flags.
func DefaultSetupOptions() SetupOptions {
	return SetupOptions{RunHooks: true, RunFileOps: true}
}

// CreateResult reports what create/open actually did, for the CLI layer to
// render.
type CreateResult struct {
	Branch             string
	WorktreePath       string
	Base               string
	PostCreateHooksRun bool
	WindowCreated      bool
}

// MergeResult reports the outcome of a merge, for the CLI layer to render.
type MergeResult struct {
	BranchMerged     string
	MainBranch       string
	HadStagedChanges bool
}

// PRSummary is the optional GitHub PR metadata `list --pr` renders when a
// lookup collaborator is wired in. The lookup itself is out of scope; only
// the data model and rendering of its result live here.
type PRSummary struct {
	Number  int
	State   string // "OPEN", "MERGED", "CLOSED"
	IsDraft bool
}

// WorktreeInfo is one row of `list`'s output.
type WorktreeInfo struct {
	Branch       string
	Path         string
	HasMuxWindow bool
	HasUnmerged  bool
	PRInfo       *PRSummary
}
