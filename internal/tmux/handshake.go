package tmux

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/example/workmux/internal/logging"
)

// handshakeTimeout bounds how long Wait will block for a pane to signal
// readiness before giving up.
const handshakeTimeout = 5 * time.Second

// Handshake synchronizes pane startup: the caller locks a channel before
// spawning a pane, wraps the pane's shell command with WrapperCommand, and
// then calls Wait, which blocks until the wrapped shell unlocks the channel
// (or the timeout expires). This avoids sending keys into a pane before its
// shell has actually started.
type Handshake struct {
	channel string
}

// NewHandshake locks a freshly named channel. The channel must be locked
// before the pane is spawned, so the unlock signal can't be missed even if
// the shell starts instantly.
func NewHandshake(ctx context.Context) (*Handshake, error) {
	channel := fmt.Sprintf("wm_ready_%d_%s", os.Getpid(), uuid.NewString())
	if err := tmuxCmd("wait-for", "-L", channel).Run(ctx); err != nil {
		return nil, fmt.Errorf("lock handshake channel: %w", err)
	}
	return &Handshake{channel: channel}, nil
}

// WrapperCommand builds a shell invocation that disables echo, unlocks the
// handshake channel, restores echo, and then execs into shell. Wrapping in
// `sh -c "..."` with double quotes (rather than single-quote escaping) keeps
// this working when tmux's default-shell is a non-POSIX shell.
func (h *Handshake) WrapperCommand(shell string) string {
	escaped := escapeForDoubleQuotedShC(shell)
	return fmt.Sprintf(`sh -c "stty -echo 2>/dev/null; tmux wait-for -U %s; stty echo 2>/dev/null; exec '%s' -l"`, h.channel, escaped)
}

// Wait blocks until the wrapped shell signals readiness by unlocking the
// channel, or until the handshake timeout elapses. Consumes the handshake;
// callers must not reuse it afterward.
func (h *Handshake) Wait(ctx context.Context) error {
	logging.Debugf("tmux handshake %s: waiting", h.channel)

	waitCtx, cancel := context.WithTimeout(ctx, handshakeTimeout)
	defer cancel()

	ok, err := tmuxCmd("wait-for", "-L", h.channel).Check(waitCtx)
	// Always try to unlock the channel we just re-locked, regardless of
	// outcome, so a future handshake on the same pid doesn't inherit state.
	_ = tmuxCmd("wait-for", "-U", h.channel).Run(context.Background())

	if waitCtx.Err() != nil {
		logging.Warnf("tmux handshake %s: timed out after %s", h.channel, handshakeTimeout)
		return fmt.Errorf("pane handshake timed out after %s - shell may have failed to start", handshakeTimeout)
	}
	if err != nil {
		logging.Warnf("tmux handshake %s: error: %v", h.channel, err)
		return fmt.Errorf("pane handshake: %w", err)
	}
	if !ok {
		logging.Warnf("tmux handshake %s: wait-for returned error", h.channel)
		return fmt.Errorf("pane handshake failed - tmux wait-for returned error")
	}

	logging.Debugf("tmux handshake %s: success", h.channel)
	return nil
}
