// Package state is workmux's crash-safe, filesystem-backed record of which
// multiplexer panes currently host an agent process, and the reconciliation
// of that record against the multiplexer's live pane list.
package state

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/example/workmux/internal/multiplexer"
)

// filenameUnsafe lists the characters encodeFilenameComponent percent-encodes
// (besides control bytes) because they would make a PaneKey component unsafe
// as a path segment: path separators, the encoding escape character itself,
// and the colon (meaningful on some filesystems).
var filenameUnsafe = map[byte]bool{
	'/': true, '\\': true, ':': true, '%': true,
}

func encodeFilenameComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == 0x7f || filenameUnsafe[c] {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func decodeFilenameComponent(s string) (string, error) {
	// url.PathUnescape implements the same percent-decoding rules we used
	// to encode with, without pulling in query-string semantics.
	return url.PathUnescape(s)
}

// PaneKey composite-identifies a pane across multiplexer backends and
// instances, so the same pane id from two different tmux servers never
// collides.
type PaneKey struct {
	Backend  string `json:"backend"`
	Instance string `json:"instance"`
	PaneID   string `json:"pane_id"`
}

// ToFilename renders the key as its on-disk filename, percent-encoding
// instance and pane_id so the result is always a safe single path segment.
func (k PaneKey) ToFilename() string {
	return fmt.Sprintf("%s__%s__%s.json", k.Backend, encodeFilenameComponent(k.Instance), encodeFilenameComponent(k.PaneID))
}

// PaneKeyFromFilename parses a filename produced by ToFilename. ok is false
// for anything that doesn't match the "<backend>__<instance>__<pane_id>.json"
// shape.
func PaneKeyFromFilename(filename string) (PaneKey, bool) {
	stem, ok := strings.CutSuffix(filename, ".json")
	if !ok {
		return PaneKey{}, false
	}
	parts := strings.SplitN(stem, "__", 3)
	if len(parts) != 3 {
		return PaneKey{}, false
	}
	instance, err := decodeFilenameComponent(parts[1])
	if err != nil {
		return PaneKey{}, false
	}
	paneID, err := decodeFilenameComponent(parts[2])
	if err != nil {
		return PaneKey{}, false
	}
	return PaneKey{Backend: parts[0], Instance: instance, PaneID: paneID}, true
}

// AgentState is the persisted, per-pane record of an agent's last reported
// status.
type AgentState struct {
	PaneKey   PaneKey                  `json:"pane_key"`
	Workdir   string                   `json:"workdir"`
	Status    *multiplexer.AgentStatus `json:"status,omitempty"`
	StatusTS  *int64                   `json:"status_ts,omitempty"`
	PaneTitle string                   `json:"pane_title,omitempty"`
	PanePID   int                      `json:"pane_pid"`
	Command   string                   `json:"command"`
	UpdatedTS int64                    `json:"updated_ts"`
}

// ToAgentPane converts stored state into the dashboard-facing view, filling
// in the session/window context the state file itself doesn't carry.
func (a AgentState) ToAgentPane(session, windowName string) multiplexer.AgentPane {
	return multiplexer.AgentPane{
		Session:    session,
		WindowName: windowName,
		PaneID:     a.PaneKey.PaneID,
		Path:       a.Workdir,
		PaneTitle:  a.PaneTitle,
		Status:     a.Status,
		StatusTS:   a.StatusTS,
	}
}

// SortMode controls dashboard ordering.
type SortMode string

const (
	SortPriority SortMode = "priority"
	SortProject  SortMode = "project"
	SortRecency  SortMode = "recency"
	SortNatural  SortMode = "natural"
)

// GlobalSettings holds dashboard preferences shared across invocations.
type GlobalSettings struct {
	SortMode    SortMode `json:"sort_mode,omitempty"`
	HideStale   bool     `json:"hide_stale,omitempty"`
	PreviewSize *int     `json:"preview_size,omitempty"`
	LastPaneID  string   `json:"last_pane_id,omitempty"`
}

// DefaultGlobalSettings is what a missing or corrupt settings file resolves
// to.
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{SortMode: SortPriority}
}
