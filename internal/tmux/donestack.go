package tmux

import (
	"context"
	"strings"
)

// doneStackOption is a tmux global option holding a comma-separated, most-
// recent-first stack of pane ids that most recently reported "done", so the
// dashboard and last-agent toggle can surface recently-finished agents
// first without re-scanning every pane on every frame.
const doneStackOption = "@workmux_done_panes"

func readDoneStack(ctx context.Context) []string {
	out, err := tmuxCmd("show-options", "-gqv", doneStackOption).Output(ctx)
	if err != nil || out == "" {
		return nil
	}
	return strings.Split(out, ",")
}

func writeDoneStack(ctx context.Context, stack []string) error {
	return tmuxCmd("set-option", "-g", doneStackOption, strings.Join(stack, ",")).Run(ctx)
}

// PushDonePane records paneID as the most recently completed agent,
// removing any earlier occurrence so it moves to the front.
func PushDonePane(ctx context.Context, paneID string) error {
	stack := removeFromStack(readDoneStack(ctx), paneID)
	stack = append([]string{paneID}, stack...)
	return writeDoneStack(ctx, stack)
}

// PopDonePane removes paneID from the done stack, e.g. because the agent
// transitioned to working/waiting or its status was cleared.
func PopDonePane(ctx context.Context, paneID string) error {
	stack := removeFromStack(readDoneStack(ctx), paneID)
	return writeDoneStack(ctx, stack)
}

func removeFromStack(stack []string, paneID string) []string {
	out := stack[:0:0]
	for _, p := range stack {
		if p != "" && p != paneID {
			out = append(out, p)
		}
	}
	return out
}
