// Package config loads the repository-level ".workmux.yaml" file. It
// performs the minimal decode-and-defaulting a complete program needs;
// general-purpose schema validation is treated as an external collaborator
// concern (see SPEC_FULL.md §6.1).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SplitDirection is the orientation of a pane split.
type SplitDirection string

const (
	SplitHorizontal SplitDirection = "horizontal"
	SplitVertical   SplitDirection = "vertical"
)

// PaneConfig describes one pane in the window layout instantiated by create/open.
type PaneConfig struct {
	Command string         `yaml:"command,omitempty"`
	Split   SplitDirection `yaml:"split,omitempty"`
	Target  *int           `yaml:"target,omitempty"`
	Focus   bool           `yaml:"focus,omitempty"`
}

// FileOpKind selects whether a file operation copies or symlinks.
type FileOpKind string

const (
	FileOpCopy    FileOpKind = "copy"
	FileOpSymlink FileOpKind = "symlink"
)

// FileOp describes one file-copy/symlink operation run when a worktree's
// environment is set up.
type FileOp struct {
	Src  string     `yaml:"src"`
	Dest string     `yaml:"dest"`
	Kind FileOpKind `yaml:"kind,omitempty"`
}

// HookPhase names when a hook command runs.
type HookPhase string

const (
	HookPostCreate HookPhase = "post_create"
	HookPreDelete  HookPhase = "pre_delete"
)

// Hook is a shell command run at a given lifecycle phase.
type Hook struct {
	Phase   HookPhase `yaml:"phase"`
	Command string    `yaml:"command"`
}

// Config is the decoded contents of .workmux.yaml, with defaults applied.
type Config struct {
	WindowPrefix      string       `yaml:"window_prefix,omitempty"`
	MainBranch        string       `yaml:"main_branch,omitempty"`
	Panes             []PaneConfig `yaml:"panes,omitempty"`
	FileOps           []FileOp     `yaml:"file_ops,omitempty"`
	Hooks             []Hook       `yaml:"hooks,omitempty"`
	StatusFormat      string       `yaml:"status_format,omitempty"`
	StaleAfterSeconds int          `yaml:"stale_after_seconds,omitempty"`
}

const (
	defaultWindowPrefix      = "wm:"
	defaultStaleAfterSeconds = 1800
	fileName                 = ".workmux.yaml"
)

func defaults() Config {
	return Config{
		WindowPrefix:      defaultWindowPrefix,
		StaleAfterSeconds: defaultStaleAfterSeconds,
	}
}

// windowPrefixOrDefault returns the configured window prefix, defaulting when empty.
func (c *Config) windowPrefixOrDefault() string {
	if c.WindowPrefix == "" {
		return defaultWindowPrefix
	}
	return c.WindowPrefix
}

// WindowPrefixValue is the public accessor used by callers building window names.
func (c *Config) WindowPrefixValue() string {
	return c.windowPrefixOrDefault()
}

// StaleAfter returns the configured staleness threshold as a duration.
func (c *Config) StaleAfter() time.Duration {
	secs := c.StaleAfterSeconds
	if secs <= 0 {
		secs = defaultStaleAfterSeconds
	}
	return time.Duration(secs) * time.Second
}

// Load reads .workmux.yaml from repoRoot, returning defaults if the file is
// absent. repoRoot may be empty, in which case the current directory is used.
func Load(repoRoot string) (*Config, error) {
	cfg := defaults()
	if repoRoot == "" {
		var err error
		repoRoot, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
	}

	path := filepath.Join(repoRoot, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.WindowPrefix == "" {
		cfg.WindowPrefix = defaultWindowPrefix
	}
	if cfg.StaleAfterSeconds <= 0 {
		cfg.StaleAfterSeconds = defaultStaleAfterSeconds
	}
	if err := ValidatePanes(cfg.Panes); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidatePanes enforces the at-most-one-focus-pane invariant from §4.1.
func ValidatePanes(panes []PaneConfig) error {
	focusCount := 0
	for i, p := range panes {
		if p.Focus {
			focusCount++
		}
		if p.Split != "" && p.Split != SplitHorizontal && p.Split != SplitVertical {
			return fmt.Errorf("panes[%d]: invalid split %q (want horizontal or vertical)", i, p.Split)
		}
	}
	if focusCount > 1 {
		return fmt.Errorf("at most one pane may set focus: true, found %d", focusCount)
	}
	return nil
}
