package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/workmux/internal/workflow"
)

// OpenCmd returns the open command.
func OpenCmd() *cobra.Command {
	var noHooks bool
	var noFileOps bool
	var runCmd string

	cmd := &cobra.Command{
		Use:   "open <branch>",
		Short: "Open a tmux window for an existing worktree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := newEngine(ctx)
			if err != nil {
				return err
			}

			opts := workflow.SetupOptions{
				RunHooks:   !noHooks,
				RunFileOps: !noFileOps,
				RunCommand: runCmd,
			}

			result, err := engine.Open(ctx, args[0], opts)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Opened %s\n", result.WorktreePath)
			if result.WindowCreated {
				fmt.Printf("  window: %s%s\n", engine.Config.WindowPrefixValue(), args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHooks, "no-hooks", false, "skip post_create hooks")
	cmd.Flags().BoolVar(&noFileOps, "no-file-ops", false, "skip configured file copy/symlink operations")
	cmd.Flags().StringVar(&runCmd, "run", "", "override the first pane's command")

	return cmd
}
