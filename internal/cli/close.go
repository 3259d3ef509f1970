package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CloseCmd returns the close command.
func CloseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close [name]",
		Short: "Close a worktree's tmux window, keeping the worktree",
		Long: `Close a worktree's tmux window. The worktree itself is left on disk.

name defaults to the current tmux window (if it carries the configured
prefix) or is otherwise derived from the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := newEngine(ctx)
			if err != nil {
				return err
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			}

			if err := engine.Close(ctx, name, currentDirHandle); err != nil {
				return err
			}

			fmt.Println("✓ Closed window")
			return nil
		},
	}

	return cmd
}
