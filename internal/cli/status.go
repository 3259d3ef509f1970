package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/workmux/internal/config"
	"github.com/example/workmux/internal/logging"
	"github.com/example/workmux/internal/multiplexer"
	"github.com/example/workmux/internal/state"
	"github.com/example/workmux/internal/tmux"
)

// SetWindowStatusCmd returns the set-window-status command: an agent
// lifecycle hook meant to be invoked from inside a tmux pane, silently a
// no-op outside one.
func SetWindowStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "set-window-status {working|waiting|done|clear}",
		Short:     "Record this pane's agent status",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"working", "waiting", "done", "clear"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mux, err := newMultiplexer()
			if err != nil {
				return err
			}

			paneID, ok := mux.CurrentPaneID(ctx)
			if !ok {
				return nil
			}

			instance, _ := mux.InstanceID(ctx)
			key := state.PaneKey{Backend: mux.Name(), Instance: instance, PaneID: paneID}

			store, storeErr := state.New()

			switch args[0] {
			case "clear":
				_ = tmux.PopDonePane(ctx, paneID)
				if storeErr == nil {
					if err := store.DeleteAgent(key); err != nil {
						logging.Warnf("failed to delete agent state: %v", err)
					}
				}
				return mux.ClearStatus(ctx, paneID)

			case "working", "waiting", "done":
				status := multiplexer.AgentStatus(args[0])

				if status == multiplexer.StatusDone {
					_ = tmux.PushDonePane(ctx, paneID)
				} else {
					_ = tmux.PopDonePane(ctx, paneID)
				}

				repoRoot, _ := os.Getwd()
				cfg, cfgErr := config.Load(repoRoot)
				if cfgErr == nil {
					_ = mux.EnsureStatusFormat(ctx, cfg.StatusFormat)
				}

				if info, ok := mux.GetLivePaneInfo(ctx, paneID); ok {
					now := time.Now().Unix()
					agentState := state.AgentState{
						PaneKey:   key,
						Workdir:   info.Workdir,
						Status:    &status,
						StatusTS:  &now,
						PaneTitle: info.Title,
						PanePID:   info.PID,
						Command:   info.ForegroundCommand,
						UpdatedTS: now,
					}
					if storeErr == nil {
						if err := store.UpsertAgent(agentState); err != nil {
							logging.Warnf("failed to persist agent state: %v", err)
						}
					}
				}

				return mux.SetStatus(ctx, paneID, status)
			}
			return nil
		},
	}

	return cmd
}
