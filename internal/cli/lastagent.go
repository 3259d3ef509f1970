package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/workmux/internal/state"
)

// LastAgentCmd returns the last-agent command: toggle to the previously
// active agent pane.
func LastAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "last-agent",
		Short: "Switch to the previously active agent pane",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mux, err := newMultiplexer()
			if err != nil {
				return err
			}
			store, err := state.New()
			if err != nil {
				return err
			}

			agents, err := store.LoadReconciledAgents(ctx, mux)
			if err != nil {
				agents = nil
			}
			isAgent := func(paneID string) bool {
				for _, a := range agents {
					if a.PaneID == paneID {
						return true
					}
				}
				return false
			}

			settings := store.LoadSettings()
			if settings.LastPaneID == "" {
				fmt.Println("No previous agent to switch to")
				return nil
			}
			if !isAgent(settings.LastPaneID) {
				fmt.Println("Last agent pane no longer exists")
				return nil
			}

			current, haveCurrent := mux.CurrentPaneID(ctx)
			if haveCurrent && current == settings.LastPaneID {
				fmt.Println("Already at last agent")
				return nil
			}

			if err := mux.SwitchToPane(ctx, settings.LastPaneID); err != nil {
				fmt.Println("Failed to switch to last agent")
				return nil
			}

			if haveCurrent && isAgent(current) {
				settings.LastPaneID = current
				if err := store.SaveSettings(settings); err != nil {
					return err
				}
			}
			return nil
		},
	}

	return cmd
}
