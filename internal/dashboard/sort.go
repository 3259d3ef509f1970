package dashboard

import (
	"sort"

	"github.com/example/workmux/internal/multiplexer"
	"github.com/example/workmux/internal/state"
)

// Row is one line of the dashboard's agent list: a reconciled pane enriched
// with the project it belongs to and its staleness at render time.
type Row struct {
	Pane    multiplexer.AgentPane
	Project string
	Stale   bool
}

// NextSortMode cycles priority -> project -> recency -> natural -> priority.
func NextSortMode(mode state.SortMode) state.SortMode {
	switch mode {
	case state.SortPriority:
		return state.SortProject
	case state.SortProject:
		return state.SortRecency
	case state.SortRecency:
		return state.SortNatural
	default:
		return state.SortPriority
	}
}

// SortModeLabel returns the display name for a sort mode.
func SortModeLabel(mode state.SortMode) string {
	switch mode {
	case state.SortProject:
		return "Project"
	case state.SortRecency:
		return "Recency"
	case state.SortNatural:
		return "Natural"
	default:
		return "Priority"
	}
}

// statusPriority ranks an agent status for SortPriority: Waiting > Done >
// Working > Stale > (no status). Lower sorts first.
func statusPriority(row Row) int {
	if row.Stale {
		return 3
	}
	if row.Pane.Status == nil {
		return 4
	}
	switch *row.Pane.Status {
	case multiplexer.StatusWaiting:
		return 0
	case multiplexer.StatusDone:
		return 1
	case multiplexer.StatusWorking:
		return 2
	default:
		return 4
	}
}

// SortRows orders rows in place according to mode.
func SortRows(rows []Row, mode state.SortMode) {
	switch mode {
	case state.SortProject:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Project != rows[j].Project {
				return rows[i].Project < rows[j].Project
			}
			return statusPriority(rows[i]) < statusPriority(rows[j])
		})
	case state.SortRecency:
		sort.SliceStable(rows, func(i, j int) bool {
			ti, oki := rows[i].Pane.StatusTS, rows[i].Pane.StatusTS != nil
			tj, okj := rows[j].Pane.StatusTS, rows[j].Pane.StatusTS != nil
			if !oki && !okj {
				return false
			}
			if !oki {
				return false
			}
			if !okj {
				return true
			}
			return *ti > *tj
		})
	case state.SortNatural:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Pane.PaneID < rows[j].Pane.PaneID
		})
	default: // SortPriority
		sort.SliceStable(rows, func(i, j int) bool {
			return statusPriority(rows[i]) < statusPriority(rows[j])
		})
	}
}
