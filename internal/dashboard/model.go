// Package dashboard implements workmux's interactive terminal view: a
// cooperative bubbletea event loop that reconciles live multiplexer panes
// against persisted agent state, presents a sortable agent list, and drives
// a per-worktree diff/patch-staging view.
package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/diffstat"
	"github.com/example/workmux/internal/gitutil"
	"github.com/example/workmux/internal/multiplexer"
	"github.com/example/workmux/internal/state"
)

// viewMode selects which pane of the dashboard is currently driving input.
type viewMode int

const (
	viewList viewMode = iota
	viewDiff
	viewPatch
)

// Model is the dashboard's bubbletea model. It owns the reconciled agent
// list, the active sort/filter preferences, and (when a diff is open) the
// diff/patch sub-state for the selected row.
type Model struct {
	mux   multiplexer.Multiplexer
	store *state.Store
	cfg   *config.Config

	rows      []Row
	filtered  []Row
	selected  int
	sortMode  state.SortMode
	hideStale bool

	mode viewMode
	diff diffState

	width, height int
	spinner       spinner.Model
	err           error
	quitting      bool
}

// diffState is the per-row diff/patch sub-state, live only while mode is
// viewDiff or viewPatch.
type diffState struct {
	path       string
	rendered   string
	addedTotal int
	removedTot int
	hunks      []diffstat.DiffHunk
	patch      *PatchSession
	viewport   viewport.Model
}

// New builds the initial dashboard model from its collaborators.
func New(mux multiplexer.Multiplexer, store *state.Store, cfg *config.Config) Model {
	settings := store.LoadSettings()
	mode := settings.SortMode
	if mode == "" {
		mode = state.SortPriority
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return Model{
		mux:       mux,
		store:     store,
		cfg:       cfg,
		sortMode:  mode,
		hideStale: settings.HideStale,
		spinner:   sp,
	}
}

// tickMsg drives the periodic reconciliation refresh.
type tickMsg time.Time

// rowsMsg carries a freshly reconciled row set back into Update.
type rowsMsg struct {
	rows []Row
	err  error
}

// diffLoadedMsg carries a freshly computed diff/hunk set back into Update.
type diffLoadedMsg struct {
	path string
	rendered   string
	added      int
	removed    int
	hunks      []diffstat.DiffHunk
	err        error
}

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, refreshCmd(m.mux, m.store, m.cfg.StaleAfter()), tickCmd(), m.spinner.Tick)
}

// refreshCmd reconciles live multiplexer panes against persisted agent
// state and wraps the result in rowsMsg, building each Row's project name
// and staleness as it goes.
func refreshCmd(mux multiplexer.Multiplexer, store *state.Store, staleAfter time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		panes, err := store.LoadReconciledAgents(ctx, mux)
		if err != nil {
			return rowsMsg{err: err}
		}

		threshold := int64(staleAfter.Seconds())
		now := time.Now().Unix()

		rows := make([]Row, 0, len(panes))
		for _, p := range panes {
			rows = append(rows, Row{
				Pane:    p,
				Project: ExtractProjectName(p.Path),
				Stale:   IsStale(p.StatusTS, threshold, now),
			})
		}
		return rowsMsg{rows: rows}
	}
}

// loadDiffCmd computes the uncommitted diff for a worktree path and parses
// it into hunks for patch mode.
func loadDiffCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client := gitutil.New(path)
		raw, err := client.Diff(ctx, "")
		if err != nil {
			return diffLoadedMsg{err: err}
		}
		if untracked, uerr := client.UntrackedFiles(ctx); uerr == nil {
			for _, f := range untracked {
				extra, derr := client.DiffAgainstEmpty(ctx, f)
				if derr == nil {
					raw += extra
				}
			}
		}

		added, removed := diffstat.CountDiffStats(raw)
		hunks := diffstat.ParseHunks(raw)
		rendered := diffstat.Colorize(ctx, raw)
		return diffLoadedMsg{path: path, rendered: rendered, added: added, removed: removed, hunks: hunks}
	}
}
