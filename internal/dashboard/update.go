package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/workmux/internal/gitutil"
)

// Update handles one bubbletea message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.diff.viewport.Width = m.diffViewportWidth()
		m.diff.viewport.Height = m.diffViewportHeight()
		return m, nil

	case tickMsg:
		return m, tea.Batch(refreshCmd(m.mux, m.store, m.cfg.StaleAfter()), tickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case rowsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = msg.rows
		m.recomputeFiltered()
		return m, nil

	case diffLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.mode = viewList
			return m, nil
		}
		vp := viewport.New(m.diffViewportWidth(), m.diffViewportHeight())
		vp.SetContent(msg.rendered)
		m.diff = diffState{
			path:       msg.path,
			rendered:   msg.rendered,
			addedTotal: msg.added,
			removedTot: msg.removed,
			hunks:      msg.hunks,
			viewport:   vp,
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case viewPatch:
		return m.handlePatchKey(msg)
	case viewDiff:
		return m.handleDiffKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}

	case "s":
		m.sortMode = NextSortMode(m.sortMode)
		m.persistSettings()
		m.recomputeFiltered()

	case "h":
		m.hideStale = !m.hideStale
		m.persistSettings()
		m.recomputeFiltered()

	case "enter", "o":
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = m.mux.SwitchToPane(ctx, row.Pane.PaneID)
			return nil
		}

	case "d":
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		m.mode = viewDiff
		return m, loadDiffCmd(row.Pane.Path)

	case "l":
		return m, m.switchToLastAgent()
	}
	return m, nil
}

func (m Model) handleDiffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.mode = viewList
		m.diff = diffState{}
		return m, nil
	case "p":
		if len(m.diff.hunks) == 0 {
			return m, nil
		}
		m.diff.patch = NewPatchSession(gitutil.New(m.diff.path), m.diff.hunks)
		m.mode = viewPatch
		return m, nil
	}

	switch msg.String() {
	case "k":
		m.diff.viewport.LineUp(1)
		return m, nil
	case "j":
		m.diff.viewport.LineDown(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.diff.viewport, cmd = m.diff.viewport.Update(msg)
	return m, cmd
}

// diffViewportWidth/diffViewportHeight size the diff viewport against the
// terminal, reserving room for the title/stat line and the help footer.
func (m Model) diffViewportWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

func (m Model) diffViewportHeight() int {
	if m.height > 6 {
		return m.height - 6
	}
	return 20
}

func (m Model) handlePatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.diff.patch
	if session == nil {
		m.mode = viewDiff
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.mode = viewDiff
		m.diff.patch = nil
	case "j", "down":
		session.Next()
	case "k", "up":
		session.Prev()
	case "s":
		if err := session.Stage(context.Background()); err != nil {
			m.err = err
		}
		if session.Done() {
			m.mode = viewDiff
			m.diff.patch = nil
		}
	case "x":
		session.Skip()
		if session.Done() {
			m.mode = viewDiff
			m.diff.patch = nil
		}
	case "b":
		session.Split()
	case "u":
		if err := session.Undo(context.Background()); err != nil {
			m.err = err
		}
	}
	return m, nil
}

// switchToLastAgent implements the last-agent toggle: switch to
// GlobalSettings.LastPaneID iff it's still among the reconciled agents and
// isn't the active pane, then write the pre-switch pane id back for the
// next toggle.
func (m Model) switchToLastAgent() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		settings := m.store.LoadSettings()
		target := settings.LastPaneID
		if target == "" {
			return nil
		}
		if !m.isReconciledPane(target) {
			return nil
		}
		current, ok := m.mux.CurrentPaneID(ctx)
		if ok && current == target {
			return nil
		}
		if err := m.mux.SwitchToPane(ctx, target); err != nil {
			return nil
		}
		if ok && m.isReconciledPane(current) {
			settings.LastPaneID = current
			_ = m.store.SaveSettings(settings)
		}
		return nil
	}
}

func (m Model) isReconciledPane(paneID string) bool {
	for _, r := range m.rows {
		if r.Pane.PaneID == paneID {
			return true
		}
	}
	return false
}

func (m *Model) persistSettings() {
	settings := m.store.LoadSettings()
	settings.SortMode = m.sortMode
	settings.HideStale = m.hideStale
	_ = m.store.SaveSettings(settings)
}

func (m *Model) recomputeFiltered() {
	rows := make([]Row, 0, len(m.rows))
	for _, r := range m.rows {
		if m.hideStale && r.Stale {
			continue
		}
		rows = append(rows, r)
	}
	SortRows(rows, m.sortMode)
	m.filtered = rows
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedRow() (Row, bool) {
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return Row{}, false
	}
	return m.filtered[m.selected], true
}
