package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/workmux/internal/icons"
	"github.com/example/workmux/internal/multiplexer"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7eb8da"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	selectedBg  = lipgloss.NewStyle().Background(lipgloss.Color("#2d333b")).Bold(true)
	workingFg   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7eb8da"))
	waitingFg   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a054"))
	doneFg      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7ec699"))
	staleFg     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d48a8a"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d48a8a")).Bold(true)
	addedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7ec699"))
	removedFg   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d48a8a"))
)

// View renders the current mode's pane.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("workmux " + m.spinner.View()))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  sort:%s  %s", SortModeLabel(m.sortMode), hideStaleLabel(m.hideStale))))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	switch m.mode {
	case viewDiff:
		b.WriteString(m.renderDiff())
	case viewPatch:
		b.WriteString(m.renderPatch())
	default:
		b.WriteString(m.renderList())
	}

	return b.String()
}

func hideStaleLabel(hide bool) string {
	if hide {
		return "hide-stale:on"
	}
	return "hide-stale:off"
}

func (m Model) renderList() string {
	if len(m.filtered) == 0 {
		return dimStyle.Render("no agent panes\n\n"+helpText(viewList))
	}

	var b strings.Builder
	for i, row := range m.filtered {
		line := renderRow(row)
		if i == m.selected {
			line = selectedBg.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpText(viewList)))
	return b.String()
}

func renderRow(row Row) string {
	icon := statusIcon(row)
	elapsed := ""
	if secs, ok := ElapsedSeconds(row.Pane.StatusTS, time.Now().Unix()); ok {
		elapsed = FormatDuration(secs)
	}
	return fmt.Sprintf("%s  %-20s %-24s %s", icon, row.Project, row.Pane.WindowName, elapsed)
}

func statusIcon(row Row) string {
	if row.Stale {
		return staleFg.Render(icons.FallbackGit.Diff)
	}
	if row.Pane.Status == nil {
		return dimStyle.Render("-")
	}
	glyph := icons.FallbackStatus.ForStatus(*row.Pane.Status)
	switch *row.Pane.Status {
	case multiplexer.StatusWorking:
		return workingFg.Render(glyph)
	case multiplexer.StatusWaiting:
		return waitingFg.Render(glyph)
	case multiplexer.StatusDone:
		return doneFg.Render(glyph)
	default:
		return glyph
	}
}

func (m Model) renderDiff() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(m.diff.path))
	b.WriteString("  ")
	b.WriteString(addedStyle.Render(fmt.Sprintf("+%d", m.diff.addedTotal)))
	b.WriteString(" ")
	b.WriteString(removedFg.Render(fmt.Sprintf("-%d", m.diff.removedTot)))
	b.WriteString("\n\n")

	b.WriteString(m.diff.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(helpText(viewDiff)))
	return b.String()
}

func (m Model) renderPatch() string {
	session := m.diff.patch
	if session == nil {
		return ""
	}
	processed, total := session.Progress()
	hunk, ok := session.Current()

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d hunks reviewed", processed, total)))
	b.WriteString("\n\n")
	if ok {
		b.WriteString(dimStyle.Render(hunk.Filename))
		b.WriteString("\n")
		b.WriteString(diffstatColorFallback(hunk.Reconstruct()))
	} else {
		b.WriteString(dimStyle.Render("all hunks reviewed"))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(helpText(viewPatch)))
	return b.String()
}

func diffstatColorFallback(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedFg.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func helpText(mode viewMode) string {
	switch mode {
	case viewDiff:
		return "j/k scroll  p patch mode  esc/q back"
	case viewPatch:
		return "j/k hunk  s stage  x skip  b split  u undo  esc/q back"
	default:
		return "j/k move  enter switch  d diff  s sort  h hide-stale  l last-agent  q quit"
	}
}
