// Package icons holds the static glyph tables the dashboard and `list --pr`
// render through. Selecting between the nerdfont and fallback tables (font
// auto-detection, interactive setup prompts) is a policy decision out of
// scope here; callers pick a table explicitly.
package icons

import "github.com/example/workmux/internal/multiplexer"

// StatusIcons maps an agent status to its display glyph.
type StatusIcons struct {
	Working string
	Waiting string
	Done    string
}

// PrIcons maps a pull-request state to its display glyph.
type PrIcons struct {
	Draft  string
	Open   string
	Merged string
	Closed string
}

// GitIcons covers the two git-status glyphs the dashboard overlays on a
// worktree row.
type GitIcons struct {
	Diff     string
	Conflict string
}

var (
	NerdfontStatus = StatusIcons{Working: "", Waiting: "", Done: ""}
	FallbackStatus = StatusIcons{Working: "*", Waiting: "?", Done: "✓"}

	NerdfontPR = PrIcons{Draft: "", Open: "", Merged: "", Closed: ""}
	FallbackPR = PrIcons{Draft: "○", Open: "●", Merged: "◆", Closed: "×"}

	NerdfontGit = GitIcons{Diff: "\U000f03eb", Conflict: "\U000f002a"}
	FallbackGit = GitIcons{Diff: "*", Conflict: "!"}
)

// ForStatus returns the glyph for an agent status from the given table.
func (s StatusIcons) ForStatus(status multiplexer.AgentStatus) string {
	switch status {
	case multiplexer.StatusWorking:
		return s.Working
	case multiplexer.StatusWaiting:
		return s.Waiting
	case multiplexer.StatusDone:
		return s.Done
	default:
		return ""
	}
}

// PRState is the lifecycle state of a pull request, as surfaced by `list
// --pr`.
type PRState string

const (
	PRStateOpen   PRState = "OPEN"
	PRStateMerged PRState = "MERGED"
	PRStateClosed PRState = "CLOSED"
)

// ForState returns the glyph for a PR state, accounting for the draft flag.
func (p PrIcons) ForState(state PRState, isDraft bool) string {
	if isDraft {
		return p.Draft
	}
	switch state {
	case PRStateOpen:
		return p.Open
	case PRStateMerged:
		return p.Merged
	case PRStateClosed:
		return p.Closed
	default:
		return ""
	}
}
