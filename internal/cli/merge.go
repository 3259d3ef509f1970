package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/workmux/internal/workflow"
)

// MergeCmd returns the merge command.
func MergeCmd() *cobra.Command {
	var ignoreUncommitted bool
	var deleteRemote bool
	var rebase bool
	var squash bool

	cmd := &cobra.Command{
		Use:   "merge [branch]",
		Short: "Merge a worktree's branch back and remove it",
		Long: `Merge a feature branch into the main branch, then remove its
worktree and local branch.

branch defaults to the current directory's worktree.

Examples:
  workmux merge feature-x
  workmux merge feature-x --squash
  workmux merge feature-x --rebase --delete-remote`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := newEngine(ctx)
			if err != nil {
				return err
			}

			branch := ""
			if len(args) == 1 {
				branch = args[0]
			} else {
				branch, err = currentDirHandle()
				if err != nil {
					return err
				}
			}

			result, err := engine.Merge(ctx, branch, workflow.MergeOptions{
				IgnoreUncommitted: ignoreUncommitted,
				DeleteRemote:      deleteRemote,
				Rebase:            rebase,
				Squash:            squash,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Merged %s into %s\n", result.BranchMerged, result.MainBranch)
			if result.HadStagedChanges {
				fmt.Println("  (staged changes were committed before merging)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreUncommitted, "ignore-uncommitted", false, "merge even with uncommitted changes")
	cmd.Flags().BoolVar(&deleteRemote, "delete-remote", false, "also delete the remote tracking branch")
	cmd.Flags().BoolVar(&rebase, "rebase", false, "rebase onto the main branch before merging")
	cmd.Flags().BoolVar(&squash, "squash", false, "squash-merge instead of a merge commit")

	return cmd
}
