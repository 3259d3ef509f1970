package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/workmux/internal/multiplexer"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := WithPath(t.TempDir())
	if err != nil {
		t.Fatalf("WithPath: %v", err)
	}
	return s
}

func sampleAgent(paneID string) AgentState {
	return AgentState{
		PaneKey:   PaneKey{Backend: "tmux", Instance: "default", PaneID: paneID},
		Workdir:   "/home/user/project",
		PanePID:   1234,
		Command:   "claude",
		UpdatedTS: 1000,
	}
}

func TestUpsertAndGetAgent(t *testing.T) {
	s := newTestStore(t)
	agent := sampleAgent("%1")
	if err := s.UpsertAgent(agent); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}

	got, ok := s.GetAgent(agent.PaneKey)
	if !ok {
		t.Fatalf("GetAgent: not found")
	}
	if got.Workdir != agent.Workdir || got.PanePID != agent.PanePID {
		t.Fatalf("got %+v want %+v", got, agent)
	}
}

func TestGetNonexistentAgent(t *testing.T) {
	s := newTestStore(t)
	_, ok := s.GetAgent(PaneKey{Backend: "tmux", Instance: "default", PaneID: "%99"})
	if ok {
		t.Fatalf("expected not found")
	}
}

func TestListAllAgents(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"%1", "%2", "%3"} {
		if err := s.UpsertAgent(sampleAgent(id)); err != nil {
			t.Fatalf("UpsertAgent(%s): %v", id, err)
		}
	}

	agents, err := s.ListAllAgents()
	if err != nil {
		t.Fatalf("ListAllAgents: %v", err)
	}
	if len(agents) != 3 {
		t.Fatalf("got %d agents, want 3", len(agents))
	}
}

func TestListAllAgentsOnMissingDirReturnsEmpty(t *testing.T) {
	s, err := WithPath(filepath.Join(t.TempDir(), "nonexistent"))
	if err != nil {
		t.Fatalf("WithPath: %v", err)
	}
	if err := os.RemoveAll(s.agentsDir()); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	agents, err := s.ListAllAgents()
	if err != nil {
		t.Fatalf("ListAllAgents: %v", err)
	}
	if agents != nil {
		t.Fatalf("got %v, want nil", agents)
	}
}

func TestListAllAgentsIgnoresTmpFiles(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpsertAgent(sampleAgent("%1")); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}
	stray := filepath.Join(s.agentsDir(), "leftover.json.tmp")
	if err := os.WriteFile(stray, []byte("not valid json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	agents, err := s.ListAllAgents()
	if err != nil {
		t.Fatalf("ListAllAgents: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("got %d agents, want 1", len(agents))
	}
}

func TestDeleteAgent(t *testing.T) {
	s := newTestStore(t)
	agent := sampleAgent("%1")
	if err := s.UpsertAgent(agent); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}
	if err := s.DeleteAgent(agent.PaneKey); err != nil {
		t.Fatalf("DeleteAgent: %v", err)
	}
	if _, ok := s.GetAgent(agent.PaneKey); ok {
		t.Fatalf("expected agent to be gone")
	}
}

func TestDeleteNonexistentAgentIsSuccess(t *testing.T) {
	s := newTestStore(t)
	err := s.DeleteAgent(PaneKey{Backend: "tmux", Instance: "default", PaneID: "%99"})
	if err != nil {
		t.Fatalf("DeleteAgent: %v", err)
	}
}

func TestAtomicWriteLeavesNoTmpFiles(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpsertAgent(sampleAgent("%1")); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}
	entries, err := os.ReadDir(s.agentsDir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("found leftover tmp file %s", e.Name())
		}
	}
}

func TestCorruptedAgentFileIsDeletedOnRead(t *testing.T) {
	s := newTestStore(t)
	key := PaneKey{Backend: "tmux", Instance: "default", PaneID: "%1"}
	path := s.agentPath(key)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, ok := s.GetAgent(key); ok {
		t.Fatalf("expected not found for corrupt file")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected corrupt file to be deleted, stat err=%v", err)
	}
}

func TestSettingsRoundtrip(t *testing.T) {
	s := newTestStore(t)
	size := 5
	settings := GlobalSettings{SortMode: SortRecency, HideStale: true, PreviewSize: &size, LastPaneID: "%3"}
	if err := s.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got := s.LoadSettings()
	if got.SortMode != settings.SortMode || got.HideStale != settings.HideStale || got.LastPaneID != settings.LastPaneID {
		t.Fatalf("got %+v want %+v", got, settings)
	}
	if got.PreviewSize == nil || *got.PreviewSize != size {
		t.Fatalf("got PreviewSize %v want %d", got.PreviewSize, size)
	}
}

func TestMissingSettingsReturnsDefaults(t *testing.T) {
	s := newTestStore(t)
	got := s.LoadSettings()
	want := DefaultGlobalSettings()
	if got.SortMode != want.SortMode {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestCorruptedSettingsReturnsDefaults(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.settingsPath(), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := s.LoadSettings()
	want := DefaultGlobalSettings()
	if got.SortMode != want.SortMode {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

// fakeMux is a minimal in-memory multiplexer.Multiplexer for exercising
// LoadReconciledAgents without a real tmux server.
type fakeMux struct {
	instance string
	panes    map[string]multiplexer.LivePaneInfo
}

var _ multiplexer.Multiplexer = (*fakeMux)(nil)

func (f *fakeMux) Name() string                                  { return "tmux" }
func (f *fakeMux) InstanceID(ctx context.Context) (string, error) { return f.instance, nil }
func (f *fakeMux) CurrentPaneID(ctx context.Context) (string, bool) { return "", false }
func (f *fakeMux) CurrentWindowName(ctx context.Context) (string, bool) { return "", false }
func (f *fakeMux) WindowExistsByFullName(ctx context.Context, name string) bool { return false }
func (f *fakeMux) CreateWindow(ctx context.Context, name, cwd string) error { return nil }
func (f *fakeMux) KillWindow(ctx context.Context, name string) error { return nil }
func (f *fakeMux) SelectWindow(ctx context.Context, name string) error { return nil }
func (f *fakeMux) SelectPane(ctx context.Context, windowName string, paneIndex int) error {
	return nil
}
func (f *fakeMux) ScheduleWindowClose(ctx context.Context, name string, delay time.Duration) error {
	return nil
}
func (f *fakeMux) SplitPane(ctx context.Context, windowName string, paneIndex int, vertical bool, cwd, command string) error {
	return nil
}
func (f *fakeMux) RespawnPane(ctx context.Context, windowName string, paneIndex int, cwd, command string) error {
	return nil
}
func (f *fakeMux) GetLivePaneInfo(ctx context.Context, paneID string) (multiplexer.LivePaneInfo, bool) {
	info, ok := f.panes[paneID]
	return info, ok
}
func (f *fakeMux) SetStatus(ctx context.Context, paneID string, status multiplexer.AgentStatus) error {
	return nil
}
func (f *fakeMux) ClearStatus(ctx context.Context, paneID string) error { return nil }
func (f *fakeMux) EnsureStatusFormat(ctx context.Context, format string) error { return nil }
func (f *fakeMux) SwitchToPane(ctx context.Context, paneID string) error { return nil }
func (f *fakeMux) IsRunning(ctx context.Context) bool { return true }

func TestLoadReconciledAgentsKeepsLivePane(t *testing.T) {
	s := newTestStore(t)
	agent := sampleAgent("%1")
	if err := s.UpsertAgent(agent); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}
	mux := &fakeMux{
		instance: "default",
		panes: map[string]multiplexer.LivePaneInfo{
			"%1": {PID: agent.PanePID, ForegroundCommand: agent.Command, Session: "main", WindowName: "feature"},
		},
	}

	panes, err := s.LoadReconciledAgents(context.Background(), mux)
	if err != nil {
		t.Fatalf("LoadReconciledAgents: %v", err)
	}
	if len(panes) != 1 {
		t.Fatalf("got %d panes, want 1", len(panes))
	}
	if panes[0].Session != "main" || panes[0].WindowName != "feature" {
		t.Fatalf("got %+v", panes[0])
	}
	if _, ok := s.GetAgent(agent.PaneKey); !ok {
		t.Fatalf("expected agent to remain stored")
	}
}

func TestLoadReconciledAgentsDropsDeadPane(t *testing.T) {
	s := newTestStore(t)
	agent := sampleAgent("%1")
	if err := s.UpsertAgent(agent); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}
	mux := &fakeMux{instance: "default", panes: map[string]multiplexer.LivePaneInfo{}}

	panes, err := s.LoadReconciledAgents(context.Background(), mux)
	if err != nil {
		t.Fatalf("LoadReconciledAgents: %v", err)
	}
	if len(panes) != 0 {
		t.Fatalf("got %d panes, want 0", len(panes))
	}
	if _, ok := s.GetAgent(agent.PaneKey); ok {
		t.Fatalf("expected agent to be deleted")
	}
}

func TestLoadReconciledAgentsDropsRecycledPID(t *testing.T) {
	s := newTestStore(t)
	agent := sampleAgent("%1")
	if err := s.UpsertAgent(agent); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}
	mux := &fakeMux{
		instance: "default",
		panes: map[string]multiplexer.LivePaneInfo{
			"%1": {PID: agent.PanePID + 1, ForegroundCommand: agent.Command},
		},
	}

	panes, err := s.LoadReconciledAgents(context.Background(), mux)
	if err != nil {
		t.Fatalf("LoadReconciledAgents: %v", err)
	}
	if len(panes) != 0 {
		t.Fatalf("got %d panes, want 0 (recycled pid)", len(panes))
	}
}

func TestLoadReconciledAgentsDropsExitedForegroundCommand(t *testing.T) {
	s := newTestStore(t)
	agent := sampleAgent("%1")
	if err := s.UpsertAgent(agent); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}
	mux := &fakeMux{
		instance: "default",
		panes: map[string]multiplexer.LivePaneInfo{
			"%1": {PID: agent.PanePID, ForegroundCommand: "zsh"},
		},
	}

	panes, err := s.LoadReconciledAgents(context.Background(), mux)
	if err != nil {
		t.Fatalf("LoadReconciledAgents: %v", err)
	}
	if len(panes) != 0 {
		t.Fatalf("got %d panes, want 0 (foreground command changed)", len(panes))
	}
}

func TestLoadReconciledAgentsIgnoresOtherInstance(t *testing.T) {
	s := newTestStore(t)
	agent := sampleAgent("%1")
	agent.PaneKey.Instance = "other-server"
	if err := s.UpsertAgent(agent); err != nil {
		t.Fatalf("UpsertAgent: %v", err)
	}
	mux := &fakeMux{instance: "default", panes: map[string]multiplexer.LivePaneInfo{}}

	panes, err := s.LoadReconciledAgents(context.Background(), mux)
	if err != nil {
		t.Fatalf("LoadReconciledAgents: %v", err)
	}
	if len(panes) != 0 {
		t.Fatalf("got %d panes, want 0", len(panes))
	}
	if _, ok := s.GetAgent(agent.PaneKey); !ok {
		t.Fatalf("expected unrelated-instance agent to be left alone")
	}
}
