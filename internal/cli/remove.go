package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/workmux/internal/workflow"
)

// RemoveCmd returns the remove command.
func RemoveCmd() *cobra.Command {
	var force bool
	var deleteRemote bool

	cmd := &cobra.Command{
		Use:   "remove <branch>",
		Short: "Delete a worktree and its branch",
		Long: `Delete a worktree's directory and its local branch.

Branches with unmerged commits are refused unless --force is given.

Examples:
  workmux remove feature-x
  workmux remove feature-x --force --delete-remote`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := newEngine(ctx)
			if err != nil {
				return err
			}

			if err := engine.Remove(ctx, args[0], workflow.RemoveOptions{
				Force:        force,
				DeleteRemote: deleteRemote,
			}); err != nil {
				return err
			}

			fmt.Printf("✓ Removed %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete even if the branch has unmerged commits")
	cmd.Flags().BoolVar(&deleteRemote, "delete-remote", false, "also delete the remote tracking branch")

	return cmd
}
