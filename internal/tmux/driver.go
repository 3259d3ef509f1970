package tmux

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/workmux/internal/icons"
	"github.com/example/workmux/internal/logging"
	"github.com/example/workmux/internal/multiplexer"
)

// Driver is the tmux implementation of multiplexer.Multiplexer.
type Driver struct {
	client *Client
}

// NewDriver connects to the default tmux server and wraps it as a
// multiplexer.Multiplexer.
func NewDriver() (*Driver, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	return &Driver{client: c}, nil
}

var _ multiplexer.Multiplexer = (*Driver)(nil)

func (d *Driver) Name() string { return "tmux" }

// InstanceID returns the tmux server's socket path, which is stable for the
// lifetime of that server and unique across concurrently running servers.
func (d *Driver) InstanceID(ctx context.Context) (string, error) {
	out, err := tmuxCmd("display-message", "-p", "#{socket_path}").Output(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve tmux instance id: %w", err)
	}
	return out, nil
}

func (d *Driver) CurrentPaneID(ctx context.Context) (string, bool) {
	out, err := tmuxCmd("display-message", "-p", "#{pane_id}").Output(ctx)
	if err != nil || out == "" {
		return "", false
	}
	return out, true
}

func (d *Driver) CurrentWindowName(ctx context.Context) (string, bool) {
	return CurrentWindowName(ctx)
}

func (d *Driver) WindowExistsByFullName(ctx context.Context, name string) bool {
	names, err := ListWindowNames(ctx)
	if err != nil {
		return false
	}
	return names[name]
}

func (d *Driver) CreateWindow(ctx context.Context, name, cwd string) error {
	return tmuxCmd("new-window", "-n", name, "-c", cwd).Run(ctx)
}

func (d *Driver) KillWindow(ctx context.Context, name string) error {
	return tmuxCmd("kill-window", "-t", "="+name).Run(ctx)
}

func (d *Driver) SelectWindow(ctx context.Context, name string) error {
	return tmuxCmd("select-window", "-t", "="+name).Run(ctx)
}

func (d *Driver) SelectPane(ctx context.Context, windowName string, paneIndex int) error {
	target := fmt.Sprintf("=%s.%d", windowName, paneIndex)
	return tmuxCmd("select-pane", "-t", target).Run(ctx)
}

func (d *Driver) ScheduleWindowClose(ctx context.Context, name string, delay time.Duration) error {
	return ScheduleWindowClose(ctx, "", name, delay)
}

func (d *Driver) SplitPane(ctx context.Context, windowName string, paneIndex int, vertical bool, cwd, command string) error {
	target := fmt.Sprintf("=%s.%d", windowName, paneIndex)
	splitArg := "-h"
	if vertical {
		splitArg = "-v"
	}
	cmd := tmuxCmd("split-window", splitArg, "-t", target, "-c", cwd)
	if command != "" {
		cmd = cmd.Arg(command)
	}
	return cmd.Run(ctx)
}

func (d *Driver) RespawnPane(ctx context.Context, windowName string, paneIndex int, cwd, command string) error {
	target := fmt.Sprintf("=%s.%d", windowName, paneIndex)
	return tmuxCmd("respawn-pane", "-t", target, "-c", cwd, "-k", command).Run(ctx)
}

// paneInfoFormat pulls everything GetLivePaneInfo needs in one round trip,
// tab-separated to survive values with spaces.
const paneInfoFormat = "#{pane_pid}\t#{pane_current_path}\t#{pane_title}\t#{pane_current_command}\t#{session_name}\t#{window_name}"

func (d *Driver) GetLivePaneInfo(ctx context.Context, paneID string) (multiplexer.LivePaneInfo, bool) {
	out, err := tmuxCmd("display-message", "-t", paneID, "-p", paneInfoFormat).Output(ctx)
	if err != nil {
		return multiplexer.LivePaneInfo{}, false
	}
	fields := strings.Split(out, "\t")
	if len(fields) != 6 {
		return multiplexer.LivePaneInfo{}, false
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil {
		return multiplexer.LivePaneInfo{}, false
	}
	return multiplexer.LivePaneInfo{
		PID:               pid,
		Workdir:           fields[1],
		Title:             fields[2],
		ForegroundCommand: fields[3],
		Session:           fields[4],
		WindowName:        fields[5],
	}, true
}

// SetStatus renders an agent's status icon as the pane's title (tmux
// automatically reflects pane_title in the window's #{pane_title} format
// variable, which a status_format can reference).
func (d *Driver) SetStatus(ctx context.Context, paneID string, status multiplexer.AgentStatus) error {
	icon := icons.FallbackStatus.ForStatus(status)
	return tmuxCmd("select-pane", "-t", paneID, "-T", icon).Run(ctx)
}

func (d *Driver) ClearStatus(ctx context.Context, paneID string) error {
	return tmuxCmd("select-pane", "-t", paneID, "-T", "").Run(ctx)
}

// EnsureStatusFormat applies a configured status-bar format override as the
// global window-status-format, so the rendered icon is actually visible.
func (d *Driver) EnsureStatusFormat(ctx context.Context, format string) error {
	if format == "" {
		return nil
	}
	ok, err := tmuxCmd("set-option", "-g", "window-status-format", format).Check(ctx)
	if err != nil {
		return err
	}
	if !ok {
		logging.Warnf("tmux rejected window-status-format %q", format)
	}
	return nil
}

func (d *Driver) SwitchToPane(ctx context.Context, paneID string) error {
	return tmuxCmd("switch-client", "-t", paneID).Run(ctx)
}

func (d *Driver) IsRunning(ctx context.Context) bool {
	return IsRunning(ctx)
}
