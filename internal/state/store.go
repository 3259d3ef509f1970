package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/workmux/internal/logging"
	"github.com/example/workmux/internal/multiplexer"
)

// Store manages filesystem-based persistence for workmux agent state.
//
// Directory structure:
//
//	$XDG_STATE_HOME/workmux/
//	├── settings.json
//	└── agents/
//	    ├── tmux__default__%251.json
//	    └── wezterm__main__3.json
type Store struct {
	basePath string
}

// New creates a Store rooted at the XDG state directory, creating it (and
// its agents subdirectory) if necessary.
func New() (*Store, error) {
	base, err := stateDir()
	if err != nil {
		return nil, err
	}
	base = filepath.Join(base, "workmux")
	if err := os.MkdirAll(filepath.Join(base, "agents"), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &Store{basePath: base}, nil
}

// WithPath creates a Store rooted at an arbitrary directory, for tests.
func WithPath(basePath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "agents"), 0o755); err != nil {
		return nil, err
	}
	return &Store{basePath: basePath}, nil
}

func stateDir() (string, error) {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine state directory: %w", err)
	}
	return filepath.Join(home, ".local", "state"), nil
}

func (s *Store) agentsDir() string       { return filepath.Join(s.basePath, "agents") }
func (s *Store) settingsPath() string    { return filepath.Join(s.basePath, "settings.json") }
func (s *Store) agentPath(k PaneKey) string {
	return filepath.Join(s.agentsDir(), k.ToFilename())
}

// writeAtomic writes content to path via a temp-file-then-rename sequence so
// readers never observe a partial write.
func writeAtomic(path string, content []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// UpsertAgent writes or replaces an agent's state file.
func (s *Store) UpsertAgent(state AgentState) error {
	content, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode agent state: %w", err)
	}
	return writeAtomic(s.agentPath(state.PaneKey), content)
}

// GetAgent reads one agent's state. Returns ok=false if it doesn't exist or
// its file is corrupt (corrupt files are deleted as a side effect).
func (s *Store) GetAgent(key PaneKey) (AgentState, bool) {
	state, ok := readAgentFile(s.agentPath(key))
	return state, ok
}

// ListAllAgents returns every stored agent, skipping stray .tmp files and
// dropping (and logging) any file that fails to parse.
func (s *Store) ListAllAgents() ([]AgentState, error) {
	entries, err := os.ReadDir(s.agentsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list agents: %w", err)
	}

	var agents []AgentState
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".tmp") {
			continue
		}
		if state, ok := readAgentFile(filepath.Join(s.agentsDir(), name)); ok {
			agents = append(agents, state)
		}
	}
	return agents, nil
}

// DeleteAgent removes an agent's state file. Absence is success.
func (s *Store) DeleteAgent(key PaneKey) error {
	if err := os.Remove(s.agentPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete agent state: %w", err)
	}
	return nil
}

// LoadSettings reads global dashboard settings, falling back to defaults on
// a missing or corrupt file.
func (s *Store) LoadSettings() GlobalSettings {
	data, err := os.ReadFile(s.settingsPath())
	if err != nil {
		return DefaultGlobalSettings()
	}
	var settings GlobalSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		logging.Warnf("corrupted settings file %s: %v, using defaults", s.settingsPath(), err)
		return DefaultGlobalSettings()
	}
	return settings
}

// SaveSettings writes global dashboard settings atomically.
func (s *Store) SaveSettings(settings GlobalSettings) error {
	content, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return writeAtomic(s.settingsPath(), content)
}

// readAgentFile reads and parses one agent state file. A missing file
// yields ok=false with no error logged; a corrupt file is deleted (the
// corruption is recoverable, not fatal) and also yields ok=false.
func readAgentFile(path string) (AgentState, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AgentState{}, false
	}
	var state AgentState
	if err := json.Unmarshal(data, &state); err != nil {
		logging.Warnf("corrupted state file %s: %v, deleting", path, err)
		_ = os.Remove(path)
		return AgentState{}, false
	}
	return state, true
}

// LoadReconciledAgents returns the live agent list, reconciling stored
// state against the multiplexer's view of reality and deleting any entry
// that no longer corresponds to a live, unchanged pane.
func (s *Store) LoadReconciledAgents(ctx context.Context, mux multiplexer.Multiplexer) ([]multiplexer.AgentPane, error) {
	backend := mux.Name()
	instance, err := mux.InstanceID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve multiplexer instance: %w", err)
	}

	all, err := s.ListAllAgents()
	if err != nil {
		return nil, err
	}

	var valid []multiplexer.AgentPane
	for _, st := range all {
		if st.PaneKey.Backend != backend || st.PaneKey.Instance != instance {
			continue
		}

		live, ok := mux.GetLivePaneInfo(ctx, st.PaneKey.PaneID)
		switch {
		case !ok:
			// Pane no longer exists.
			_ = s.DeleteAgent(st.PaneKey)
		case live.PID != st.PanePID:
			// Pane id was recycled by an unrelated process.
			_ = s.DeleteAgent(st.PaneKey)
		case live.ForegroundCommand != st.Command:
			// Agent process exited inside the pane.
			_ = s.DeleteAgent(st.PaneKey)
		default:
			valid = append(valid, st.ToAgentPane(live.Session, live.WindowName))
		}
	}
	return valid, nil
}

// DeleteAgentsUnderPath removes every stored agent whose workdir falls
// under root, used when a worktree is removed.
func (s *Store) DeleteAgentsUnderPath(root string) error {
	all, err := s.ListAllAgents()
	if err != nil {
		return err
	}
	for _, st := range all {
		if st.Workdir == root || strings.HasPrefix(st.Workdir, root+string(filepath.Separator)) {
			if err := s.DeleteAgent(st.PaneKey); err != nil {
				return err
			}
		}
	}
	return nil
}
