package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/multiplexer"
	"github.com/example/workmux/internal/state"
)

// fakeMux is a minimal multiplexer.Multiplexer stub for dashboard tests.
type fakeMux struct {
	current   string
	haveCurr  bool
	switched  []string
	switchErr error
}

var _ multiplexer.Multiplexer = (*fakeMux)(nil)

func (f *fakeMux) Name() string                                   { return "tmux" }
func (f *fakeMux) InstanceID(ctx context.Context) (string, error) { return "test", nil }
func (f *fakeMux) CurrentPaneID(ctx context.Context) (string, bool) {
	return f.current, f.haveCurr
}
func (f *fakeMux) CurrentWindowName(ctx context.Context) (string, bool)  { return "", false }
func (f *fakeMux) WindowExistsByFullName(ctx context.Context, n string) bool { return false }
func (f *fakeMux) CreateWindow(ctx context.Context, n, cwd string) error    { return nil }
func (f *fakeMux) KillWindow(ctx context.Context, n string) error           { return nil }
func (f *fakeMux) SelectWindow(ctx context.Context, n string) error         { return nil }
func (f *fakeMux) SelectPane(ctx context.Context, n string, idx int) error  { return nil }
func (f *fakeMux) ScheduleWindowClose(ctx context.Context, n string, d time.Duration) error {
	return nil
}
func (f *fakeMux) SplitPane(ctx context.Context, n string, idx int, v bool, cwd, cmd string) error {
	return nil
}
func (f *fakeMux) RespawnPane(ctx context.Context, n string, idx int, cwd, cmd string) error {
	return nil
}
func (f *fakeMux) GetLivePaneInfo(ctx context.Context, paneID string) (multiplexer.LivePaneInfo, bool) {
	return multiplexer.LivePaneInfo{}, false
}
func (f *fakeMux) SetStatus(ctx context.Context, paneID string, s multiplexer.AgentStatus) error {
	return nil
}
func (f *fakeMux) ClearStatus(ctx context.Context, paneID string) error { return nil }
func (f *fakeMux) EnsureStatusFormat(ctx context.Context, format string) error {
	return nil
}
func (f *fakeMux) SwitchToPane(ctx context.Context, paneID string) error {
	if f.switchErr != nil {
		return f.switchErr
	}
	f.switched = append(f.switched, paneID)
	return nil
}
func (f *fakeMux) IsRunning(ctx context.Context) bool { return true }

func newTestModel(t *testing.T) (Model, *state.Store, *fakeMux) {
	t.Helper()
	store, err := state.WithPath(t.TempDir())
	if err != nil {
		t.Fatalf("WithPath: %v", err)
	}
	mux := &fakeMux{}
	m := New(mux, store, &config.Config{})
	return m, store, mux
}

func TestRecomputeFilteredHidesStale(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.hideStale = true
	m.rows = []Row{
		{Project: "a", Stale: true, Pane: multiplexer.AgentPane{PaneID: "%1"}},
		{Project: "b", Stale: false, Pane: multiplexer.AgentPane{PaneID: "%2"}},
	}
	m.recomputeFiltered()
	if len(m.filtered) != 1 || m.filtered[0].Project != "b" {
		t.Fatalf("expected only non-stale row, got %+v", m.filtered)
	}
}

func TestRecomputeFilteredClampsSelection(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.selected = 5
	m.rows = []Row{{Project: "a", Pane: multiplexer.AgentPane{PaneID: "%1"}}}
	m.recomputeFiltered()
	if m.selected != 0 {
		t.Fatalf("expected selection clamped to 0, got %d", m.selected)
	}
}

func TestSelectedRowOutOfRange(t *testing.T) {
	m, _, _ := newTestModel(t)
	if _, ok := m.selectedRow(); ok {
		t.Fatalf("expected no selected row on empty filtered list")
	}
}

func TestPersistSettingsRoundTrips(t *testing.T) {
	m, store, _ := newTestModel(t)
	m.sortMode = state.SortProject
	m.hideStale = true
	m.persistSettings()

	got := store.LoadSettings()
	if got.SortMode != state.SortProject || !got.HideStale {
		t.Fatalf("unexpected persisted settings: %+v", got)
	}
}

func TestIsReconciledPane(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.rows = []Row{{Pane: multiplexer.AgentPane{PaneID: "%1"}}}
	if !m.isReconciledPane("%1") {
		t.Fatalf("expected %%1 to be reconciled")
	}
	if m.isReconciledPane("%2") {
		t.Fatalf("did not expect %%2 to be reconciled")
	}
}

func TestSwitchToLastAgentSkipsWhenTargetNotReconciled(t *testing.T) {
	m, store, mux := newTestModel(t)
	settings := store.LoadSettings()
	settings.LastPaneID = "%9"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	m.rows = []Row{{Pane: multiplexer.AgentPane{PaneID: "%1"}}}

	m.switchToLastAgent()()

	if len(mux.switched) != 0 {
		t.Fatalf("expected no switch, got %v", mux.switched)
	}
}

func TestSwitchToLastAgentSwitchesAndRecordsPrevious(t *testing.T) {
	m, store, mux := newTestModel(t)
	settings := store.LoadSettings()
	settings.LastPaneID = "%1"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	mux.current = "%2"
	mux.haveCurr = true
	m.rows = []Row{
		{Pane: multiplexer.AgentPane{PaneID: "%1"}},
		{Pane: multiplexer.AgentPane{PaneID: "%2"}},
	}

	m.switchToLastAgent()()

	if len(mux.switched) != 1 || mux.switched[0] != "%1" {
		t.Fatalf("expected switch to %%1, got %v", mux.switched)
	}
	got := store.LoadSettings()
	if got.LastPaneID != "%2" {
		t.Fatalf("expected LastPaneID updated to previous pane %%2, got %q", got.LastPaneID)
	}
}
